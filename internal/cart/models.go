package cart

// CartItem is one client-held cart line. Prices are in rupees; the checkout
// payload converts the final total to paise before create-order.
type CartItem struct {
	ProductID     string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice,omitempty"` // pre-discount price, for savings display
	Quantity      int    `json:"quantity"`
	Stock         int    `json:"stock"` // stock ceiling at read time
	Category      string `json:"category,omitempty"`
}

// Totals is the derived cart summary shown at checkout.
type Totals struct {
	Subtotal         int64 `json:"subtotal"`
	OriginalSubtotal int64 `json:"originalSubtotal"`
	Savings          int64 `json:"savings"`
	ItemCount        int   `json:"itemCount"`
	DeliveryCharges  int64 `json:"deliveryCharges"`
	Tax              int64 `json:"tax"`
	Total            int64 `json:"total"`
}
