package orders

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory Store used by tests and local development.
// It applies the same conditional-transition rules as the Postgres store.
type MemStore struct {
	mu     sync.Mutex
	byID   map[string]*Order
	nowFn func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		byID:   make(map[string]*Order),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemStore) CreateOrder(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.nowFn()
	o.Status = StatusPending
	o.CreatedAt = now
	o.UpdatedAt = now
	cp := o
	m.byID[o.ID] = &cp
	return nil
}

func (m *MemStore) SetRazorpayOrderID(_ context.Context, orderID, razorpayOrderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.RazorpayOrderID = razorpayOrderID
	o.UpdatedAt = m.nowFn()
	return nil
}

func (m *MemStore) GetOrderByID(_ context.Context, orderID string) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return *o, nil
}

func (m *MemStore) ListOrdersByUser(_ context.Context, userID string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []Order
	for _, o := range m.byID {
		if o.UserID == userID {
			list = append(list, *o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *MemStore) MarkPaid(_ context.Context, orderID, paymentID string, details PaymentDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Status != StatusPending {
		return ErrOrderClosed
	}
	now := m.nowFn()
	o.Status = StatusPaid
	o.PaymentID = paymentID
	d := details
	o.PaymentDetails = &d
	o.PaidAt = &now
	o.UpdatedAt = now
	return nil
}

func (m *MemStore) MarkFailed(_ context.Context, orderID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Status != StatusPending {
		return ErrOrderClosed
	}
	now := m.nowFn()
	o.Status = StatusFailed
	o.FailureReason = reason
	o.FailedAt = &now
	o.UpdatedAt = now
	return nil
}
