package orders

import "time"

// Order lifecycle statuses. An order only ever moves forward:
// pending -> paid or pending -> failed. paid and failed are terminal.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Amount bounds for a single order, in the smallest currency unit (paise).
const (
	MinOrderAmount = 100     // ₹1
	MaxOrderAmount = 5000000 // ₹50,000
)

// Order represents an order entity in the database
type Order struct {
	ID              string          `json:"id"`                        // UUID assigned at creation
	UserID          string          `json:"userId"`                    // UID of the user placing the order
	Items           []OrderItem     `json:"items"`                     // Point-in-time copy of the cart, not a live reference
	Amount          int64           `json:"amount"`                    // Total in smallest currency unit, fixed at creation
	Currency        string          `json:"currency"`                  // ISO currency code, e.g. INR
	DeliveryAddress Address         `json:"deliveryAddress"`           // Free-form postal fields
	PhoneNumber     string          `json:"phoneNumber"`               // Contact number for delivery
	Status          string          `json:"status"`                    // pending, paid, or failed
	RazorpayOrderID string          `json:"razorpayOrderId,omitempty"` // Gateway order reference, empty until gateway order created
	PaymentID       string          `json:"paymentId,omitempty"`       // Gateway payment reference, empty until payment verified
	FailureReason   string          `json:"failureReason,omitempty"`   // Set only when status is failed
	PaymentDetails  *PaymentDetails `json:"paymentDetails,omitempty"`  // Gateway's echoed record, audit only
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	FailedAt        *time.Time      `json:"failedAt,omitempty"`
}

// OrderItem is the durable snapshot of one cart line taken at create-order time.
type OrderItem struct {
	ProductID     string `json:"id" validate:"required"`    // Unique identifier for the product
	Name          string `json:"name" validate:"required"`  // Product name at time of order
	Price         int64  `json:"price" validate:"min=0"`    // Unit price at time of order (rupees)
	OriginalPrice int64  `json:"originalPrice,omitempty"`   // Pre-discount unit price, for savings display
	Quantity      int    `json:"quantity" validate:"min=1"` // Bounded by product stock at read time
	Category      string `json:"category,omitempty"`
}

// Address holds the delivery address captured at checkout.
type Address struct {
	FullName string `json:"fullName"`
	Line1    string `json:"addressLine1"`
	Line2    string `json:"addressLine2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
}

// PaymentDetails is the snapshot of the gateway's own payment record stored
// on success. The echoed amount is kept for audit and never used to decide
// whether the payment succeeded.
type PaymentDetails struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	CreatedAt int64  `json:"created_at"` // Gateway epoch seconds
}
