package repository

import (
	"sync"

	"github.com/mbellard/capstore/app/models"
)

// subscriptionRepository implements SubscriptionRepository with in-memory
// storage
type subscriptionRepository struct {
	mu   sync.RWMutex
	subs map[string]*models.UserSubscription
}

// NewSubscriptionRepository creates a new in-memory subscription store
func NewSubscriptionRepository() SubscriptionRepository {
	return &subscriptionRepository{
		subs: make(map[string]*models.UserSubscription),
	}
}

func (r *subscriptionRepository) Create(sub *models.UserSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := *sub
	r.subs[s.ID] = &s
	return nil
}

func (r *subscriptionRepository) GetByID(id string) (*models.UserSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, exists := r.subs[id]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}
	copy := *sub
	return &copy, nil
}

func (r *subscriptionRepository) Mutate(id string, fn func(*models.UserSubscription) error) (*models.UserSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.subs[id]
	if !exists {
		return nil, ErrSubscriptionNotFound
	}

	updated := *sub
	if err := fn(&updated); err != nil {
		return nil, err
	}
	r.subs[id] = &updated
	out := updated
	return &out, nil
}

// MutateByStripeID is a full scan: there is no secondary index on the
// external reference. Only the first match is touched, as dunning events
// carry exactly one subscription.
func (r *subscriptionRepository) MutateByStripeID(stripeID string, fn func(*models.UserSubscription) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, sub := range r.subs {
		if sub.StripeSubscriptionID != stripeID {
			continue
		}
		updated := *sub
		if err := fn(&updated); err != nil {
			return true, err
		}
		r.subs[id] = &updated
		return true, nil
	}
	return false, nil
}
