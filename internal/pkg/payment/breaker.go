package payment

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// breakerProcessor decorates a Processor with a shared circuit breaker so a
// degraded processor fails checkout fast instead of stacking up synchronous
// calls on the request path.
type breakerProcessor struct {
	next Processor
	cb   *gobreaker.CircuitBreaker[any]
}

// WithBreaker wraps a Processor in a circuit breaker. The breaker opens
// after five consecutive failures and probes again after 30 seconds.
func WithBreaker(next Processor) Processor {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "payment-processor",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &breakerProcessor{next: next, cb: cb}
}

func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	v, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (p *breakerProcessor) CreatePayment(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	return execute(p.cb, func() (*Intent, error) {
		return p.next.CreatePayment(ctx, amount, currency, metadata)
	})
}

func (p *breakerProcessor) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*Customer, error) {
	return execute(p.cb, func() (*Customer, error) {
		return p.next.CreateCustomer(ctx, email, metadata)
	})
}

func (p *breakerProcessor) CreateRecurringPrice(ctx context.Context, productName string, amount int64) (string, error) {
	return execute(p.cb, func() (string, error) {
		return p.next.CreateRecurringPrice(ctx, productName, amount)
	})
}

func (p *breakerProcessor) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*Subscription, error) {
	return execute(p.cb, func() (*Subscription, error) {
		return p.next.CreateSubscription(ctx, customerID, priceID, paymentMethodID)
	})
}

func (p *breakerProcessor) CancelSubscription(ctx context.Context, subscriptionID string) error {
	_, err := p.cb.Execute(func() (any, error) {
		return nil, p.next.CancelSubscription(ctx, subscriptionID)
	})
	return err
}

func (p *breakerProcessor) CreateSetupIntent(ctx context.Context, metadata map[string]string) (*SetupIntent, error) {
	return execute(p.cb, func() (*SetupIntent, error) {
		return p.next.CreateSetupIntent(ctx, metadata)
	})
}

func (p *breakerProcessor) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	_, err := p.cb.Execute(func() (any, error) {
		return nil, p.next.DetachPaymentMethod(ctx, paymentMethodID)
	})
	return err
}

func (p *breakerProcessor) CreateOffSessionPayment(ctx context.Context, amount int64, paymentMethodID, description string) (*Intent, error) {
	return execute(p.cb, func() (*Intent, error) {
		return p.next.CreateOffSessionPayment(ctx, amount, paymentMethodID, description)
	})
}
