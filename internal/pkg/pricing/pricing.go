// Package pricing turns a cart snapshot into priced line items against the
// current catalog. All arithmetic is integer minor units; there is no
// rounding anywhere.
package pricing

import (
	"fmt"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/internal/pkg/apperr"
)

// Catalog is the read surface pricing needs from the product store.
type Catalog interface {
	GetByID(id string) (*models.Product, error)
}

// Quote is a priced cart: line-item snapshots, their exact total, and any
// stock shortfalls found in lenient mode.
type Quote struct {
	Items         []models.OrderItem
	Total         int64
	StockWarnings []string
}

// Price computes a quote for the given items. In strict mode the first stock
// shortfall aborts the whole computation with InsufficientStock; in lenient
// mode shortfalls become warnings and the line is priced at the requested
// quantity, not the available one. A missing product fails in both modes.
func Price(items []models.CartItem, catalog Catalog, strict bool) (*Quote, error) {
	quote := &Quote{
		Items: make([]models.OrderItem, 0, len(items)),
	}

	for _, item := range items {
		product, err := catalog.GetByID(item.ProductID)
		if err != nil {
			return nil, apperr.Wrap(apperr.NotFound, err, "product %s not found", item.ProductID)
		}

		if product.Stock < item.Quantity {
			if strict {
				return nil, apperr.New(apperr.InsufficientStock,
					"insufficient stock for %s: available %d", product.Name, product.Stock)
			}
			quote.StockWarnings = append(quote.StockWarnings,
				fmt.Sprintf("%s: requested %d, available %d", product.Name, item.Quantity, product.Stock))
		}

		quote.Items = append(quote.Items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
		quote.Total += product.Price * int64(item.Quantity)
	}

	return quote, nil
}
