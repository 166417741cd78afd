// Package gateway wraps the Razorpay payment gateway behind the two calls
// the order handlers need: create a remote order and fetch a payment record.
package gateway

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is the remote order created against the gateway before the
// hosted checkout opens.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Payment is the gateway's own record of a payment attempt, fetched after
// signature verification as the second trust check.
type Payment struct {
	ID        string
	Amount    int64
	Currency  string
	Status    string
	Method    string
	CreatedAt int64
}

// Gateway payment statuses that count as a successful payment.
const (
	PaymentStatusCaptured   = "captured"
	PaymentStatusAuthorized = "authorized"
)

// Gateway is what the handlers depend on; Conf is the real client and tests
// substitute a fake.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error)
	FetchPayment(paymentID string) (*Payment, error)
	VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool
	KeyID() string
}

// Conf holds the gateway credentials and client. Credentials are loaded once
// at startup and must never be logged.
type Conf struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

func NewConf(keyID, keySecret string) (*Conf, error) {
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay key id or secret is not set")
	}
	return &Conf{
		keyID:     keyID,
		keySecret: keySecret,
		client:    razorpay.NewClient(keyID, keySecret),
	}, nil
}

// KeyID returns the publishable key the UI needs to open the hosted checkout
// widget. The secret never leaves this package.
func (c *Conf) KeyID() string {
	return c.keyID
}

func (c *Conf) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}
	return &GatewayOrder{
		ID:       id,
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"]),
	}, nil
}

func (c *Conf) FetchPayment(paymentID string) (*Payment, error) {
	body, err := c.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch razorpay payment: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("razorpay payment response missing id")
	}
	return &Payment{
		ID:        id,
		Amount:    asInt64(body["amount"]),
		Currency:  asString(body["currency"]),
		Status:    asString(body["status"]),
		Method:    asString(body["method"]),
		CreatedAt: asInt64(body["created_at"]),
	}, nil
}

// VerifySignature recomputes the checkout signature over
// "{orderID}|{paymentID}" with the shared secret and compares it to the one
// the UI relayed from the gateway. This is the sole authenticity check on the
// payment callback.
func (c *Conf) VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool {
	return verifySignature(razorpayOrderID, razorpayPaymentID, signature, c.keySecret)
}

// The SDK hands back decoded JSON, so numbers arrive as float64.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
