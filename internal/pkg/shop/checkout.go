package shop

import (
	"context"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/pricing"
)

// Checkout converts the user's cart into an order. The cart is priced in
// strict mode, a payment authorization is requested synchronously, and only
// then is the order persisted with status Processing and the payment
// reference attached. If the processor call fails, nothing is stored. The
// cart itself survives checkout; it is cleared by the payment-success
// webhook, never here.
func (s *Service) Checkout(ctx context.Context, userID string) (*CheckoutConfirmation, error) {
	cart, err := s.carts.GetByUser(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, err, "no cart for user %s", userID)
	}
	if len(cart.Items) == 0 {
		return nil, apperr.New(apperr.EmptyCart, "cart is empty")
	}

	quote, err := pricing.Price(cart.Items, s.catalog, true)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	now := s.now().UTC()
	order := &models.Order{
		ID:        orderID,
		UserID:    userID,
		Items:     quote.Items,
		Total:     quote.Total,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	intent, err := s.processor.CreatePayment(ctx, quote.Total, "eur", map[string]string{
		"order_id": orderID,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Processor, err, "payment initiation failed: %v", err)
	}

	order.PaymentIntentID = intent.ID
	order.Status = models.OrderStatusProcessing
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	log.Infof("checkout created for user %s: order %s, total %d", userID, orderID, quote.Total)

	return &CheckoutConfirmation{
		OrderID:      orderID,
		CheckoutURL:  s.baseURL + "/checkout/" + orderID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
