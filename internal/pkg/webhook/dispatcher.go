package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/subscriptions"
)

type Dispatcher struct {
	orders  repository.OrderRepository
	catalog repository.CatalogRepository
	carts   repository.CartRepository
	methods repository.PaymentMethodRepository
	subs    *subscriptions.Service

	now func() time.Time
}

func NewDispatcher(
	orders repository.OrderRepository,
	catalog repository.CatalogRepository,
	carts repository.CartRepository,
	methods repository.PaymentMethodRepository,
	subs *subscriptions.Service,
) *Dispatcher {
	return &Dispatcher{
		orders:  orders,
		catalog: catalog,
		carts:   carts,
		methods: methods,
		subs:    subs,
		now:     time.Now,
	}
}

// Handle decodes one callback and applies it. Unknown event types are
// logged and acknowledged so the processor stops retrying them.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) error {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return apperr.Wrap(apperr.MalformedPayload, err, "undecodable webhook body")
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return d.paymentSucceeded(ctx, event.Data.Object)
	case "payment_intent.payment_failed":
		return d.paymentFailed(ctx, event.Data.Object)
	case "setup_intent.succeeded":
		return d.setupSucceeded(ctx, event.Data.Object)
	case "invoice.payment_succeeded":
		return d.invoiceSucceeded(ctx, event.Data.Object)
	case "invoice.payment_failed":
		return d.invoiceFailed(ctx, event.Data.Object)
	case "customer.subscription.created":
		log.Infof("subscription created at processor, awaiting first invoice")
		return nil
	case "customer.source.expiring":
		log.Warnf("a saved card is about to expire")
		return nil
	default:
		log.Infof("ignoring webhook event type %s", event.Type)
		return nil
	}
}

func (d *Dispatcher) paymentSucceeded(ctx context.Context, object json.RawMessage) error {
	var pi PaymentIntentEvent
	if err := json.Unmarshal(object, &pi); err != nil {
		return apperr.Wrap(apperr.MalformedPayload, err, "undecodable payment intent")
	}

	orderID := pi.Metadata["order_id"]
	if orderID == "" {
		log.Warnf("payment intent %s carries no order reference", pi.ID)
		return nil
	}

	order, err := d.orders.Mutate(orderID, func(o *models.Order) error {
		o.Status = models.OrderStatusCompleted
		o.UpdatedAt = d.now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			log.Warnf("payment intent %s references unknown order %s", pi.ID, orderID)
			return nil
		}
		return err
	}

	for _, item := range order.Items {
		if err := d.catalog.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			log.Errorf("stock adjustment for %s failed: %v", item.ProductID, err)
		}
	}
	d.carts.Delete(order.UserID)

	log.Infof("order %s completed by payment intent %s", orderID, pi.ID)
	return nil
}

func (d *Dispatcher) paymentFailed(ctx context.Context, object json.RawMessage) error {
	var pi PaymentIntentEvent
	if err := json.Unmarshal(object, &pi); err != nil {
		return apperr.Wrap(apperr.MalformedPayload, err, "undecodable payment intent")
	}

	orderID := pi.Metadata["order_id"]
	if orderID == "" {
		log.Warnf("failed payment intent %s carries no order reference", pi.ID)
		return nil
	}

	if _, err := d.orders.Mutate(orderID, func(o *models.Order) error {
		o.Status = models.OrderStatusFailed
		o.UpdatedAt = d.now().UTC()
		return nil
	}); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			log.Warnf("failed payment intent %s references unknown order %s", pi.ID, orderID)
			return nil
		}
		return err
	}

	log.Warnf("order %s marked failed by payment intent %s", orderID, pi.ID)
	return nil
}

func (d *Dispatcher) setupSucceeded(ctx context.Context, object json.RawMessage) error {
	var si SetupIntentEvent
	if err := json.Unmarshal(object, &si); err != nil {
		return apperr.Wrap(apperr.MalformedPayload, err, "undecodable setup intent")
	}

	userID := si.Metadata["user_id"]
	if userID == "" || si.PaymentMethod == "" {
		log.Warnf("setup intent %s misses user or payment method reference", si.ID)
		return nil
	}

	// The callback does not carry card details. They would come from a
	// payment method retrieve call; until then a recognizable test card
	// stands in.
	pm := &models.SavedPaymentMethod{
		ID:                    uuid.New().String(),
		UserID:                userID,
		StripePaymentMethodID: si.PaymentMethod,
		CardLast4:             "4242",
		CardBrand:             "visa",
		ExpMonth:              12,
		ExpYear:               2030,
		IsDefault:             d.methods.CountByUser(userID) == 0,
		CreatedAt:             d.now().UTC(),
	}
	if err := d.methods.Create(pm); err != nil {
		return err
	}

	log.Infof("payment method %s saved for user %s", si.PaymentMethod, userID)
	return nil
}

func (d *Dispatcher) invoiceSucceeded(ctx context.Context, object json.RawMessage) error {
	var inv InvoiceEvent
	if err := json.Unmarshal(object, &inv); err != nil {
		return apperr.Wrap(apperr.MalformedPayload, err, "undecodable invoice")
	}

	log.Infof("invoice of %d paid for subscription %s", inv.AmountPaid, inv.Subscription)
	return nil
}

func (d *Dispatcher) invoiceFailed(ctx context.Context, object json.RawMessage) error {
	var inv InvoiceEvent
	if err := json.Unmarshal(object, &inv); err != nil {
		return apperr.Wrap(apperr.MalformedPayload, err, "undecodable invoice")
	}

	if inv.AttemptCount < subscriptions.PastDueAttemptThreshold {
		log.Warnf("invoice attempt %d failed for subscription %s, retrying", inv.AttemptCount, inv.Subscription)
		return nil
	}

	found, err := d.subs.MarkPastDue(ctx, inv.Subscription)
	if err != nil {
		return err
	}
	if !found {
		log.Warnf("failed invoice references unknown subscription %s", inv.Subscription)
		return nil
	}

	log.Warnf("subscription %s flagged past due after %d failed attempts", inv.Subscription, inv.AttemptCount)
	return nil
}
