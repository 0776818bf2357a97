package models

import "time"

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// CanCancel reports whether an order in this status may still be cancelled
// or modified by the customer. Processing is blocked until the payment
// webhook resolves it; Completed and Cancelled are terminal.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusFailed
}

// OrderItem is a point-in-time snapshot of a priced cart line. Name and
// price are copied at checkout and do not track later catalog changes.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// Subtotal returns price x quantity in minor units.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Order is a priced purchase attempt: line items are immutable snapshots
// (replaced only wholesale by a modification), status advances through the
// lifecycle, and Total always equals the sum of line subtotals.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Clone returns a deep copy safe to hand out after the store lock is
// released.
func (o *Order) Clone() *Order {
	out := *o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return &out
}
