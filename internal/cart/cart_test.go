package cart

import (
	"strings"
	"testing"
)

func TestComputeTotalsBelowDeliveryThreshold(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Name: "Thekua", Price: 299, OriginalPrice: 349, Quantity: 1, Stock: 10},
	}
	got, err := ComputeTotals(items)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if got.Subtotal != 299 {
		t.Errorf("subtotal = %d, want 299", got.Subtotal)
	}
	if got.Savings != 50 {
		t.Errorf("savings = %d, want 50", got.Savings)
	}
	if got.DeliveryCharges != DeliveryCharge {
		t.Errorf("delivery = %d, want %d", got.DeliveryCharges, DeliveryCharge)
	}
	// 5% of 299 rounds to 15
	if got.Tax != 15 {
		t.Errorf("tax = %d, want 15", got.Tax)
	}
	if got.Total != 299+50+15 {
		t.Errorf("total = %d, want %d", got.Total, 299+50+15)
	}
}

func TestComputeTotalsFreeDelivery(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Name: "Thekua", Price: 299, Quantity: 2, Stock: 10},
	}
	got, err := ComputeTotals(items)
	if err != nil {
		t.Fatalf("compute totals: %v", err)
	}
	if got.Subtotal != 598 {
		t.Errorf("subtotal = %d, want 598", got.Subtotal)
	}
	if got.DeliveryCharges != 0 {
		t.Errorf("delivery = %d, want 0 at subtotal >= %d", got.DeliveryCharges, FreeDeliveryThreshold)
	}
	if got.ItemCount != 2 {
		t.Errorf("item count = %d, want 2", got.ItemCount)
	}
	// No original price on the item: savings must be zero, not negative.
	if got.Savings != 0 {
		t.Errorf("savings = %d, want 0", got.Savings)
	}
}

func TestComputeTotalsStockCeiling(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Name: "Thekua", Price: 299, Quantity: 3, Stock: 2},
	}
	_, err := ComputeTotals(items)
	if err == nil {
		t.Fatalf("expected stock error")
	}
	if !strings.Contains(err.Error(), "insufficient stock") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestComputeTotalsRejectsBadInput(t *testing.T) {
	if _, err := ComputeTotals(nil); err == nil {
		t.Errorf("empty cart accepted")
	}
	if _, err := ComputeTotals([]CartItem{{ProductID: "p1", Price: 10, Quantity: 0, Stock: 5}}); err == nil {
		t.Errorf("zero quantity accepted")
	}
	if _, err := ComputeTotals([]CartItem{{Price: 10, Quantity: 1, Stock: 5}}); err == nil {
		t.Errorf("missing product id accepted")
	}
	if _, err := ComputeTotals([]CartItem{{ProductID: "p1", Price: -1, Quantity: 1, Stock: 5}}); err == nil {
		t.Errorf("negative price accepted")
	}
}
