package orders

import (
	"context"
	"errors"
)

var (
	// ErrOrderNotFound is returned when no order exists for the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderClosed is returned when a terminal transition is attempted on
	// an order that already left the pending state. The guard is a
	// conditional update on the current status, so two racing writers
	// cannot both win.
	ErrOrderClosed = errors.New("order already closed")
)

// Store is the persistence contract the handlers depend on. The Postgres
// implementation backs the service; the in-memory one backs tests.
type Store interface {
	// CreateOrder persists a new order in the pending state.
	CreateOrder(ctx context.Context, o Order) error

	// SetRazorpayOrderID attaches the gateway order reference to a
	// freshly created order.
	SetRazorpayOrderID(ctx context.Context, orderID, razorpayOrderID string) error

	// GetOrderByID returns the order or ErrOrderNotFound.
	GetOrderByID(ctx context.Context, orderID string) (Order, error)

	// ListOrdersByUser returns the user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)

	// MarkPaid moves a pending order to paid, recording the payment
	// reference and the gateway's payment snapshot. Returns ErrOrderClosed
	// if the order is no longer pending.
	MarkPaid(ctx context.Context, orderID, paymentID string, details PaymentDetails) error

	// MarkFailed moves a pending order to failed with the given reason.
	// Returns ErrOrderClosed if the order is no longer pending.
	MarkFailed(ctx context.Context, orderID, reason string) error
}
