package models

import "time"

// SavedPaymentMethod is a card the user stored for later off-session
// payments. Records are created by the setup_intent.succeeded webhook and
// removed on explicit delete. The first method saved for a user becomes the
// default automatically.
type SavedPaymentMethod struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	StripePaymentMethodID string    `json:"stripe_payment_method_id"`
	CardLast4             string    `json:"card_last4"`
	CardBrand             string    `json:"card_brand"`
	ExpMonth              int       `json:"exp_month"`
	ExpYear               int       `json:"exp_year"`
	IsDefault             bool      `json:"is_default"`
	CreatedAt             time.Time `json:"created_at"`
}
