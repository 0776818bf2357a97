package payment

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Stripe implements Processor against the Stripe API.
type Stripe struct {
	api *client.API
}

// NewStripe creates a Stripe-backed processor from a secret key.
func NewStripe(secretKey string) *Stripe {
	if secretKey == "" {
		log.Warn("stripe secret key is empty, processor calls will fail")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Stripe{api: api}
}

func (s *Stripe) CreatePayment(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodAutomatic)),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentCreationFailed, err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (s *Stripe) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	cust, err := s.api.Customers.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCustomerCreationFailed, err)
	}
	return &Customer{ID: cust.ID}, nil
}

func (s *Stripe) CreateRecurringPrice(ctx context.Context, productName string, amount int64) (string, error) {
	productParams := &stripe.ProductParams{
		Name: stripe.String(productName),
	}
	productParams.Context = ctx
	productParams.AddMetadata("type", "subscription")

	product, err := s.api.Products.New(productParams)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPriceCreationFailed, err)
	}

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String(string(stripe.CurrencyEUR)),
		Product:    stripe.String(product.ID),
		UnitAmount: stripe.Int64(amount),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
	}
	priceParams.Context = ctx

	price, err := s.api.Prices.New(priceParams)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPriceCreationFailed, err)
	}
	return price.ID, nil
}

func (s *Stripe) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	params.Context = ctx
	if paymentMethodID != "" {
		params.DefaultPaymentMethod = stripe.String(paymentMethodID)
	}
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := s.api.Subscriptions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubscriptionCreationFailed, err)
	}

	// The confirmation token sits two levels deep and may be missing when
	// the first invoice settled without client action.
	clientSecret := ""
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		clientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return &Subscription{ID: sub.ID, ClientSecret: clientSecret}, nil
}

func (s *Stripe) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	params.Context = ctx

	if _, err := s.api.Subscriptions.Update(subscriptionID, params); err != nil {
		return fmt.Errorf("%w: %v", ErrSubscriptionCancelFailed, err)
	}
	return nil
}

func (s *Stripe) CreateSetupIntent(ctx context.Context, metadata map[string]string) (*SetupIntent, error) {
	params := &stripe.SetupIntentParams{}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	si, err := s.api.SetupIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetupIntentCreationFailed, err)
	}
	return &SetupIntent{ID: si.ID, ClientSecret: si.ClientSecret}, nil
}

func (s *Stripe) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	params := &stripe.PaymentMethodDetachParams{}
	params.Context = ctx

	if _, err := s.api.PaymentMethods.Detach(paymentMethodID, params); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentMethodDetachFailed, err)
	}
	return nil
}

func (s *Stripe) CreateOffSessionPayment(ctx context.Context, amount int64, paymentMethodID, description string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(string(stripe.CurrencyEUR)),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
		Description:   stripe.String(description),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentCreationFailed, err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}
