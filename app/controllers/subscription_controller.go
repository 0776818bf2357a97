package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbellard/capstore/internal/pkg/subscriptions"
)

type SubscriptionController struct {
	subs *subscriptions.Service
}

func NewSubscriptionController(subs *subscriptions.Service) *SubscriptionController {
	return &SubscriptionController{subs: subs}
}

type CreateSubscriptionRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	PlanID        string `json:"plan_id" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func (ct *SubscriptionController) HandleCreate(c *fiber.Ctx) error {
	var req CreateSubscriptionRequest
	if !parseBody(c, &req) {
		return nil
	}

	conf, err := ct.subs.Create(c.Context(), req.UserID, req.PlanID, req.Email, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conf)
}

func (ct *SubscriptionController) HandleGet(c *fiber.Ctx) error {
	sub, err := ct.subs.Get(c.Context(), c.Params("sub_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sub)
}

// HandleCancel stops renewal at the end of the current period.
func (ct *SubscriptionController) HandleCancel(c *fiber.Ctx) error {
	subID := c.Params("sub_id")
	if err := ct.subs.Cancel(c.Context(), subID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"subscription_id": subID, "status": "cancelled"})
}
