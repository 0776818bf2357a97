// Package payment abstracts the external payment processor. The core only
// depends on the Processor interface; the Stripe implementation and the
// circuit-breaker decorator live alongside so tests can substitute a fake.
package payment

import (
	"context"
	"errors"
)

// Sentinel errors wrapped around processor failures.
var (
	ErrPaymentCreationFailed      = errors.New("failed to create payment")
	ErrCustomerCreationFailed     = errors.New("failed to create customer")
	ErrPriceCreationFailed        = errors.New("failed to create recurring price")
	ErrSubscriptionCreationFailed = errors.New("failed to create subscription")
	ErrSubscriptionCancelFailed   = errors.New("failed to cancel subscription")
	ErrSetupIntentCreationFailed  = errors.New("failed to create setup intent")
	ErrPaymentMethodDetachFailed  = errors.New("failed to detach payment method")
)

// Intent is a one-off payment authorization. ClientSecret is the opaque
// token the client needs to confirm the payment browser-side.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Customer is a processor-side customer record.
type Customer struct {
	ID string
}

// Subscription is a processor-side recurring subscription. ClientSecret is
// extracted from the first invoice's payment intent and may be empty.
type Subscription struct {
	ID           string
	ClientSecret string
}

// SetupIntent is a processor-side card-registration flow.
type SetupIntent struct {
	ID           string
	ClientSecret string
}

// Processor is the remote payment-processor contract. Every call is a
// synchronous network round trip on the request's critical path; no retries
// happen here.
type Processor interface {
	// CreatePayment authorizes a one-off payment. Metadata travels to the
	// processor and comes back on webhook events for correlation.
	CreatePayment(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*Customer, error)
	// CreateRecurringPrice registers a monthly price for the named product
	// and returns the processor's price id.
	CreateRecurringPrice(ctx context.Context, productName string, amount int64) (string, error)
	CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*Subscription, error)
	// CancelSubscription schedules a cancel at the end of the current period.
	CancelSubscription(ctx context.Context, subscriptionID string) error
	CreateSetupIntent(ctx context.Context, metadata map[string]string) (*SetupIntent, error)
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
	// CreateOffSessionPayment charges a saved payment method immediately,
	// confirmed server-side.
	CreateOffSessionPayment(ctx context.Context, amount int64, paymentMethodID, description string) (*Intent, error)
}
