// Package webhook turns processor callbacks into local state changes.
// Payment confirmations are the only place orders complete, stock is
// decremented and carts are cleared.
package webhook

import "encoding/json"

// Event is the outer envelope of every processor callback. The inner
// object is kept raw and decoded per event type.
type Event struct {
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntentEvent covers payment_intent.succeeded and
// payment_intent.payment_failed.
type PaymentIntentEvent struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// SetupIntentEvent covers setup_intent.succeeded.
type SetupIntentEvent struct {
	ID            string            `json:"id"`
	PaymentMethod string            `json:"payment_method"`
	Metadata      map[string]string `json:"metadata"`
}

// InvoiceEvent covers invoice.payment_succeeded and
// invoice.payment_failed.
type InvoiceEvent struct {
	Subscription string `json:"subscription"`
	AmountPaid   int64  `json:"amount_paid"`
	AttemptCount int64  `json:"attempt_count"`
}
