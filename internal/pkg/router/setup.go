package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbellard/capstore/app/controllers"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Controllers bundles every handler group the routers need.
type Controllers struct {
	Cart           *controllers.CartController
	Orders         *controllers.OrderController
	Subscriptions  *controllers.SubscriptionController
	PaymentMethods *controllers.PaymentMethodController
	Webhooks       *controllers.WebhookController
}

func InstallRouter(app *fiber.App, ctl Controllers) {
	setup(app, NewHttpRouter(), NewApiRouter(ctl), NewWebhookRouter(ctl))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
