package router

import (
	"github.com/gofiber/fiber/v2"
)

type ApiRouter struct {
	ctl Controllers
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api")

	cart := api.Group("/cart")
	cart.Post("/add", h.ctl.Cart.HandleAdd)
	cart.Get("/view", h.ctl.Cart.HandleView)
	cart.Post("/checkout", h.ctl.Cart.HandleCheckout)

	orders := api.Group("/orders")
	orders.Get("/", h.ctl.Orders.HandleList)
	orders.Get("/:order_id", h.ctl.Orders.HandleGet)
	orders.Post("/:order_id/cancel", h.ctl.Orders.HandleCancel)
	orders.Put("/:order_id/update", h.ctl.Orders.HandleUpdate)

	subs := api.Group("/subscriptions")
	subs.Post("/create", h.ctl.Subscriptions.HandleCreate)
	subs.Get("/:sub_id", h.ctl.Subscriptions.HandleGet)
	subs.Post("/:sub_id/cancel", h.ctl.Subscriptions.HandleCancel)

	methods := api.Group("/payment-methods")
	methods.Post("/setup", h.ctl.PaymentMethods.HandleSetup)
	methods.Get("/list", h.ctl.PaymentMethods.HandleList)
	methods.Delete("/:pm_id/delete", h.ctl.PaymentMethods.HandleDelete)
	methods.Post("/pay", h.ctl.PaymentMethods.HandlePay)
}

func NewApiRouter(ctl Controllers) *ApiRouter {
	return &ApiRouter{ctl: ctl}
}
