package kafka

import "time"

const (
	TopicOrderPaid   = `order-service.order-paid`
	TopicOrderFailed = `order-service.order-failed`
)

// Representation of the events this service produces on order resolution

type OrderPaidEvent struct {
	OrderId   string    `json:"order_id"`
	UserId    string    `json:"user_id"`
	PaymentId string    `json:"payment_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"` // Timestamp of event creation
}

type OrderFailedEvent struct {
	OrderId   string    `json:"order_id"`
	UserId    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
