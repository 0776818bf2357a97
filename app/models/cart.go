package models

import "time"

// CartItem is a requested (product, quantity) pair. Quantities accumulate
// when the same product is added repeatedly.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the per-user staging area consumed by checkout. One cart per user,
// created lazily on first add, removed wholesale on confirmed payment.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// Clone returns a deep copy safe to hand out after the store lock is
// released.
func (c *Cart) Clone() *Cart {
	out := &Cart{
		UserID:    c.UserID,
		Items:     make([]CartItem, len(c.Items)),
		CreatedAt: c.CreatedAt,
	}
	copy(out.Items, c.Items)
	return out
}
