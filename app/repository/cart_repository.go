package repository

import (
	"sync"
	"time"

	"github.com/mbellard/capstore/app/models"
)

// cartRepository implements CartRepository with in-memory storage
type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

// NewCartRepository creates a new in-memory cart store
func NewCartRepository() CartRepository {
	return &cartRepository{
		carts: make(map[string]*models.Cart),
	}
}

func (r *cartRepository) AddItem(userID string, item models.CartItem) *models.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, exists := r.carts[userID]
	if !exists {
		cart = &models.Cart{
			UserID:    userID,
			Items:     []models.CartItem{},
			CreatedAt: time.Now().UTC(),
		}
		r.carts[userID] = cart
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			return cart.Clone()
		}
	}
	cart.Items = append(cart.Items, item)
	return cart.Clone()
}

func (r *cartRepository) GetByUser(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	return cart.Clone(), nil
}

func (r *cartRepository) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
}
