// Package cart derives checkout totals from a client-held list of line
// items. The cart itself lives on the client; nothing here is persisted.
package cart

import (
	"fmt"
	"math"
)

const (
	// FreeDeliveryThreshold is the subtotal (rupees) at and above which
	// delivery is free.
	FreeDeliveryThreshold = 500

	// DeliveryCharge applies below the free-delivery threshold.
	DeliveryCharge = 50

	// TaxRate is 5% GST, rounded to the nearest rupee.
	TaxRate = 0.05
)

// ComputeTotals validates the line items and derives the cart summary.
// Quantities are bounded by each item's stock ceiling.
func ComputeTotals(items []CartItem) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, fmt.Errorf("cart is empty")
	}

	var t Totals
	for _, item := range items {
		if item.ProductID == "" {
			return Totals{}, fmt.Errorf("cart item missing product id")
		}
		if item.Quantity <= 0 {
			return Totals{}, fmt.Errorf("invalid quantity %d for product %s", item.Quantity, item.ProductID)
		}
		if item.Price < 0 || item.OriginalPrice < 0 {
			return Totals{}, fmt.Errorf("invalid price for product %s", item.ProductID)
		}
		if item.Quantity > item.Stock {
			return Totals{}, fmt.Errorf("insufficient stock for product %s: requested %d, available %d",
				item.ProductID, item.Quantity, item.Stock)
		}

		t.Subtotal += item.Price * int64(item.Quantity)
		original := item.OriginalPrice
		if original == 0 {
			original = item.Price
		}
		t.OriginalSubtotal += original * int64(item.Quantity)
		t.ItemCount += item.Quantity
	}

	t.Savings = t.OriginalSubtotal - t.Subtotal
	if t.Subtotal < FreeDeliveryThreshold {
		t.DeliveryCharges = DeliveryCharge
	}
	t.Tax = int64(math.Round(float64(t.Subtotal) * TaxRate))
	t.Total = t.Subtotal + t.DeliveryCharges + t.Tax
	return t, nil
}
