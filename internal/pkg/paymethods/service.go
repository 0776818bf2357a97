// Package paymethods manages saved payment methods: registering new cards
// through setup intents, listing and detaching them, and charging them
// off-session without the customer present.
package paymethods

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/payment"
)

type Service struct {
	methods   repository.PaymentMethodRepository
	processor payment.Processor
}

func NewService(methods repository.PaymentMethodRepository, processor payment.Processor) *Service {
	return &Service{methods: methods, processor: processor}
}

// SetupConfirmation carries what the client needs to finish collecting a
// card in the browser.
type SetupConfirmation struct {
	SetupIntentID string `json:"setup_intent_id"`
	ClientSecret  string `json:"client_secret"`
}

// ChargeReceipt summarizes an off-session payment made with a saved card.
type ChargeReceipt struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	CardLast4       string `json:"card_last4"`
}

// Setup opens a setup intent for the user. Nothing is stored locally at
// this point; the saved method materializes when the processor confirms
// the setup through a webhook.
func (s *Service) Setup(ctx context.Context, userID string) (*SetupConfirmation, error) {
	intent, err := s.processor.CreateSetupIntent(ctx, map[string]string{"user_id": userID})
	if err != nil {
		return nil, apperr.Wrap(apperr.Processor, err, "setup intent creation failed")
	}

	log.Infof("setup intent %s opened for user %s", intent.ID, userID)
	return &SetupConfirmation{SetupIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (s *Service) List(ctx context.Context, userID string) []models.SavedPaymentMethod {
	return s.methods.ListByUser(userID)
}

// Delete detaches the card at the processor first, then drops the local
// record. A processor failure keeps the record so the call can be retried.
func (s *Service) Delete(ctx context.Context, pmID string) error {
	pm, err := s.methods.GetByID(pmID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentMethodNotFound) {
			return apperr.New(apperr.NotFound, "payment method %s not found", pmID)
		}
		return err
	}

	if err := s.processor.DetachPaymentMethod(ctx, pm.StripePaymentMethodID); err != nil {
		return apperr.Wrap(apperr.Processor, err, "payment method detach failed")
	}

	if err := s.methods.Delete(pmID); err != nil {
		return err
	}
	log.Infof("payment method %s removed for user %s", pmID, pm.UserID)
	return nil
}

// PayWithSaved charges a saved card off-session. The method must belong
// to the paying user.
func (s *Service) PayWithSaved(ctx context.Context, userID, pmID string, amount int64, description string) (*ChargeReceipt, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "amount must be positive")
	}

	pm, err := s.methods.GetByID(pmID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentMethodNotFound) {
			return nil, apperr.New(apperr.NotFound, "payment method %s not found", pmID)
		}
		return nil, err
	}
	if pm.UserID != userID {
		return nil, apperr.New(apperr.Forbidden, "payment method does not belong to this user")
	}

	intent, err := s.processor.CreateOffSessionPayment(ctx, amount, pm.StripePaymentMethodID, description)
	if err != nil {
		return nil, apperr.Wrap(apperr.Processor, err, "off-session payment failed")
	}

	log.Infof("off-session payment %s of %d charged to method %s", intent.ID, amount, pmID)
	return &ChargeReceipt{
		PaymentIntentID: intent.ID,
		Status:          intent.Status,
		Amount:          amount,
		CardLast4:       pm.CardLast4,
	}, nil
}
