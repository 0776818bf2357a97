package models

import "testing"

func TestOrderStatusCanCancel(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusFailed, true},
		{OrderStatusProcessing, false},
		{OrderStatusCompleted, false},
		{OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		if got := tt.status.CanCancel(); got != tt.want {
			t.Fatalf("CanCancel(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{ProductID: "cap_001", ProductName: "Cap", Quantity: 2, Price: 1500}
	if got := item.Subtotal(); got != 3000 {
		t.Fatalf("Subtotal() = %d, want 3000", got)
	}
	item.Quantity = 0
	if got := item.Subtotal(); got != 0 {
		t.Fatalf("Subtotal() with zero quantity = %d, want 0", got)
	}
}

func TestOrderCloneIsIndependent(t *testing.T) {
	orig := &Order{
		ID:     "ord_1",
		UserID: "u1",
		Items:  []OrderItem{{ProductID: "cap_001", Quantity: 1, Price: 2500}},
		Total:  2500,
		Status: OrderStatusPending,
	}

	clone := orig.Clone()
	clone.Items[0].Quantity = 99
	clone.Status = OrderStatusCancelled

	if orig.Items[0].Quantity != 1 {
		t.Fatalf("mutating clone items leaked into original")
	}
	if orig.Status != OrderStatusPending {
		t.Fatalf("mutating clone status leaked into original")
	}
}

func TestCartCloneIsIndependent(t *testing.T) {
	orig := &Cart{
		UserID: "u1",
		Items:  []CartItem{{ProductID: "cap_001", Quantity: 2}},
	}

	clone := orig.Clone()
	clone.Items[0].Quantity = 50

	if orig.Items[0].Quantity != 2 {
		t.Fatalf("mutating clone items leaked into original")
	}
}
