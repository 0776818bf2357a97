package repository

import (
	"sync"

	"github.com/mbellard/capstore/app/models"
)

// catalogRepository implements CatalogRepository with in-memory storage
type catalogRepository struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

// NewCatalogRepository creates a new in-memory product catalog
func NewCatalogRepository() CatalogRepository {
	return &catalogRepository{
		products: make(map[string]*models.Product),
	}
}

func (r *catalogRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *product
	r.products[p.ID] = &p
	return nil
}

func (r *catalogRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	copy := *product
	return &copy, nil
}

func (r *catalogRepository) List() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result
}

func (r *catalogRepository) AdjustStock(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return ErrProductNotFound
	}
	product.Stock += delta
	return nil
}
