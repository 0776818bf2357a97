// Package subscriptions manages recurring newspaper subscriptions: creation
// against the payment processor, lookup, cancellation, and the dunning
// suspension driven by invoice webhooks.
package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/payment"
)

// PastDueAttemptThreshold is the invoice attempt count at which a
// subscription is suspended.
const PastDueAttemptThreshold = 3

// Service owns the subscription lifecycle.
type Service struct {
	plans     repository.PlanRepository
	subs      repository.SubscriptionRepository
	processor payment.Processor

	now func() time.Time
}

// NewService creates the subscription service.
func NewService(plans repository.PlanRepository, subs repository.SubscriptionRepository, processor payment.Processor) *Service {
	return &Service{
		plans:     plans,
		subs:      subs,
		processor: processor,
		now:       time.Now,
	}
}

// Confirmation is returned on subscription creation. ClientSecret may be
// empty when the first invoice needed no client-side confirmation.
type Confirmation struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret"`
	Status         string `json:"status"`
}

// Create provisions a subscription: a processor customer, a monthly
// recurring price for the plan, and the subscription itself, in that order.
// Any processor failure aborts the whole operation with nothing persisted.
func (s *Service) Create(ctx context.Context, userID, planID, email, paymentMethodID string) (*Confirmation, error) {
	plan, err := s.plans.GetByID(planID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, err, "subscription plan %s not found", planID)
	}

	customer, err := s.processor.CreateCustomer(ctx, email, map[string]string{"user_id": userID})
	if err != nil {
		return nil, apperr.Wrap(apperr.Processor, err, "customer creation failed: %v", err)
	}

	priceID, err := s.processor.CreateRecurringPrice(ctx, plan.Name, plan.Price)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processor, err, "price creation failed: %v", err)
	}

	remote, err := s.processor.CreateSubscription(ctx, customer.ID, priceID, paymentMethodID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processor, err, "subscription creation failed: %v", err)
	}

	sub := &models.UserSubscription{
		ID:                   uuid.New().String(),
		UserID:               userID,
		PlanID:               planID,
		StripeSubscriptionID: remote.ID,
		Status:               models.SubscriptionStatusActive,
		CurrentPeriodEnd:     s.now().UTC().Add(30 * 24 * time.Hour),
		CancelAtPeriodEnd:    false,
		CreatedAt:            s.now().UTC(),
	}
	if err := s.subs.Create(sub); err != nil {
		return nil, err
	}

	log.Infof("subscription %s created for user %s on plan %s", sub.ID, userID, plan.Name)

	return &Confirmation{
		SubscriptionID: sub.ID,
		ClientSecret:   remote.ClientSecret,
		Status:         models.SubscriptionStatusActive.String(),
	}, nil
}

// Get looks up a subscription.
func (s *Service) Get(ctx context.Context, subID string) (*models.UserSubscription, error) {
	_ = ctx
	sub, err := s.subs.GetByID(subID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, err, "subscription %s not found", subID)
	}
	return sub, nil
}

// Cancel requests an end-of-period cancellation from the processor and, on
// success, marks the local record Cancelled with cancel_at_period_end set,
// regardless of the remotely scheduled date. A processor failure leaves the
// local record untouched; retrying is safe.
func (s *Service) Cancel(ctx context.Context, subID string) error {
	sub, err := s.subs.GetByID(subID)
	if err != nil {
		return apperr.Wrap(apperr.NotFound, err, "subscription %s not found", subID)
	}

	if err := s.processor.CancelSubscription(ctx, sub.StripeSubscriptionID); err != nil {
		return apperr.Wrap(apperr.Processor, err, "subscription cancellation failed: %v", err)
	}

	_, err = s.subs.Mutate(subID, func(sub *models.UserSubscription) error {
		sub.Status = models.SubscriptionStatusCancelled
		sub.CancelAtPeriodEnd = true
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return apperr.Wrap(apperr.NotFound, err, "subscription %s not found", subID)
		}
		return err
	}

	log.Infof("subscription %s cancelled", subID)
	return nil
}

// MarkPastDue suspends the subscription carrying the given external
// reference after repeated payment failures. Reports whether a matching
// subscription existed.
func (s *Service) MarkPastDue(ctx context.Context, stripeSubscriptionID string) (bool, error) {
	_ = ctx
	return s.subs.MutateByStripeID(stripeSubscriptionID, func(sub *models.UserSubscription) error {
		sub.Status = models.SubscriptionStatusPastDue
		return nil
	})
}
