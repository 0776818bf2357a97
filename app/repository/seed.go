package repository

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/mbellard/capstore/app/models"
)

// SeedDemoData fills the catalog and plan stores with the demo shop
// inventory. Called once at boot; tests seed their own fixtures instead.
func SeedDemoData(repos *Repositories) {
	products := []models.Product{
		{
			ID:          "cap_001",
			Name:        "Classic Red Cap",
			Price:       2500,
			Stock:       50,
			Description: "Classic adjustable red cap",
		},
		{
			ID:          "cap_002",
			Name:        "Sport Black Cap",
			Price:       3000,
			Stock:       30,
			Description: "Breathable black sports cap",
		},
		{
			ID:          "cap_003",
			Name:        "Premium White Cap",
			Price:       4500,
			Stock:       20,
			Description: "Premium organic cotton cap",
		},
	}
	for i := range products {
		_ = repos.Catalog.Create(&products[i])
	}

	plans := []models.SubscriptionPlan{
		{
			ID:          "plan_normal",
			Name:        "Normal",
			Price:       1000,
			Description: "Standard newspaper subscription",
		},
		{
			ID:          "plan_supplement",
			Name:        "Supplement",
			Price:       1500,
			Description: "Newspaper subscription with supplements",
		},
		{
			ID:          "plan_complet",
			Name:        "Complete",
			Price:       2000,
			Description: "Full newspaper subscription",
		},
	}
	for i := range plans {
		_ = repos.Plans.Create(&plans[i])
	}

	log.Infof("demo data seeded: %d products, %d plans", len(products), len(plans))
}
