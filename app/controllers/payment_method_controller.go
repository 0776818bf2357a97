package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbellard/capstore/internal/pkg/paymethods"
)

type PaymentMethodController struct {
	methods *paymethods.Service
}

func NewPaymentMethodController(methods *paymethods.Service) *PaymentMethodController {
	return &PaymentMethodController{methods: methods}
}

type SetupPaymentMethodRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleSetup opens a setup intent so the client can collect a card.
func (ct *PaymentMethodController) HandleSetup(c *fiber.Ctx) error {
	var req SetupPaymentMethodRequest
	if !parseBody(c, &req) {
		return nil
	}

	conf, err := ct.methods.Setup(c.Context(), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conf)
}

func (ct *PaymentMethodController) HandleList(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id missing"})
	}
	return c.JSON(fiber.Map{"payment_methods": ct.methods.List(c.Context(), userID)})
}

func (ct *PaymentMethodController) HandleDelete(c *fiber.Ctx) error {
	pmID := c.Params("pm_id")
	if err := ct.methods.Delete(c.Context(), pmID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"payment_method_id": pmID, "deleted": true})
}

type PayWithSavedMethodRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	Description     string `json:"description"`
}

// HandlePay charges a saved card off-session, without the customer in
// the browser.
func (ct *PaymentMethodController) HandlePay(c *fiber.Ctx) error {
	var req PayWithSavedMethodRequest
	if !parseBody(c, &req) {
		return nil
	}

	receipt, err := ct.methods.PayWithSaved(c.Context(), req.UserID, req.PaymentMethodID, req.Amount, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}
