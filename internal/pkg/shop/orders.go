package shop

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/pricing"
)

// GetOrder looks up a single order.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	_ = ctx
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, err, "order %s not found", orderID)
	}
	return order, nil
}

// ListOrders returns every order owned by the user.
func (s *Service) ListOrders(ctx context.Context, userID string) []models.Order {
	_ = ctx
	return s.orders.ListByUser(userID)
}

// gateMutable rejects a cancel/modify attempt when the order left the 24h
// window or its status forbids the operation.
func gateMutable(order *models.Order, elapsedHours int64, verb string) error {
	if elapsedHours > CancellationWindowHours {
		return apperr.New(apperr.WindowExpired,
			"%s window expired: allowed within %d hours of the order, this one is %d hours old",
			verb, CancellationWindowHours, elapsedHours)
	}
	if order.Status.CanCancel() {
		return nil
	}
	switch order.Status {
	case models.OrderStatusCompleted:
		return apperr.New(apperr.InvalidState, "order already completed, %s impossible", verb)
	case models.OrderStatusProcessing:
		return apperr.New(apperr.InvalidState, "payment in progress, wait for confirmation")
	default:
		return apperr.New(apperr.InvalidState, "order already cancelled")
	}
}

// CancelOrder cancels an order that is still Pending or Failed and within
// the 24h window. The external payment authorization is deliberately not
// reversed here.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*CancelReceipt, error) {
	_ = ctx
	now := s.now().UTC()

	var receipt *CancelReceipt
	_, err := s.orders.Mutate(orderID, func(order *models.Order) error {
		elapsed := int64(now.Sub(order.CreatedAt).Hours())
		if err := gateMutable(order, elapsed, "cancellation"); err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelled
		order.UpdatedAt = now
		receipt = &CancelReceipt{OrderID: orderID, CancelledAt: now, HoursSinceOrder: elapsed}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "order %s not found", orderID)
		}
		return nil, err
	}

	log.Infof("order %s cancelled %dh after creation", orderID, receipt.HoursSinceOrder)
	return receipt, nil
}

// ModifyOrder replaces an order's line items, re-priced strictly against the
// current catalog, under the same window and status gates as cancellation.
// On success the order drops back to Pending and loses its payment
// reference; a new checkout cycle is implied.
func (s *Service) ModifyOrder(ctx context.Context, orderID string, items []models.CartItem) (*models.Order, error) {
	_ = ctx
	if len(items) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "order must keep at least one item")
	}
	now := s.now().UTC()

	updated, err := s.orders.Mutate(orderID, func(order *models.Order) error {
		if err := gateMutable(order, int64(now.Sub(order.CreatedAt).Hours()), "modification"); err != nil {
			return err
		}

		quote, err := pricing.Price(items, s.catalog, true)
		if err != nil {
			return err
		}

		order.Items = quote.Items
		order.Total = quote.Total
		order.Status = models.OrderStatusPending
		order.PaymentIntentID = ""
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, err, "order %s not found", orderID)
		}
		return nil, err
	}

	log.Warnf("order %s modified, new total %d", orderID, updated.Total)
	return updated, nil
}
