package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mbellard/capstore/app/controllers"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/env"
	"github.com/mbellard/capstore/internal/pkg/payment"
	"github.com/mbellard/capstore/internal/pkg/paymethods"
	"github.com/mbellard/capstore/internal/pkg/router"
	"github.com/mbellard/capstore/internal/pkg/shop"
	"github.com/mbellard/capstore/internal/pkg/subscriptions"
	"github.com/mbellard/capstore/internal/pkg/webhook"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "3000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	repos := repository.NewRepositories()
	repository.SeedDemoData(repos)

	processor := payment.WithBreaker(payment.NewStripe(env.GetEnv("STRIPE_SECRET_KEY", "")))
	baseURL := env.GetEnv("BASE_URL", "http://localhost:3000")

	shopSvc := shop.NewService(repos.Catalog, repos.Carts, repos.Orders, processor, baseURL)
	subsSvc := subscriptions.NewService(repos.Plans, repos.Subscriptions, processor)
	methodsSvc := paymethods.NewService(repos.PaymentMethods, processor)
	dispatcher := webhook.NewDispatcher(repos.Orders, repos.Catalog, repos.Carts, repos.PaymentMethods, subsSvc)

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "capstore",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())
	app.Use(cors.New())

	// ROUTER
	router.InstallRouter(app, router.Controllers{
		Cart:           controllers.NewCartController(shopSvc),
		Orders:         controllers.NewOrderController(shopSvc),
		Subscriptions:  controllers.NewSubscriptionController(subsSvc),
		PaymentMethods: controllers.NewPaymentMethodController(methodsSvc),
		Webhooks:       controllers.NewWebhookController(dispatcher),
	})

	return app
}
