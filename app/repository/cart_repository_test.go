package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellard/capstore/app/models"
)

func TestCartRepository_AddItem_CreatesCartLazily(t *testing.T) {
	repo := NewCartRepository()

	_, err := repo.GetByUser("u1")
	require.ErrorIs(t, err, ErrCartNotFound)

	cart := repo.AddItem("u1", models.CartItem{ProductID: "cap_001", Quantity: 2})
	assert.Equal(t, "u1", cart.UserID)
	assert.Len(t, cart.Items, 1)
	assert.False(t, cart.CreatedAt.IsZero())
}

func TestCartRepository_AddItem_AccumulatesQuantity(t *testing.T) {
	repo := NewCartRepository()

	repo.AddItem("u1", models.CartItem{ProductID: "cap_001", Quantity: 2})
	repo.AddItem("u1", models.CartItem{ProductID: "cap_002", Quantity: 1})
	cart := repo.AddItem("u1", models.CartItem{ProductID: "cap_001", Quantity: 3})

	require.Len(t, cart.Items, 2)
	// Insertion order is preserved.
	assert.Equal(t, "cap_001", cart.Items[0].ProductID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "cap_002", cart.Items[1].ProductID)
	assert.Equal(t, 1, cart.Items[1].Quantity)
}

func TestCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository()
	repo.AddItem("u1", models.CartItem{ProductID: "cap_001", Quantity: 1})

	repo.Delete("u1")

	_, err := repo.GetByUser("u1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	// Deleting an absent cart is a no-op.
	repo.Delete("u1")
}

func TestCartRepository_ConcurrentAdds(t *testing.T) {
	repo := NewCartRepository()

	const workers = 8
	const addsPerWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < addsPerWorker; i++ {
				repo.AddItem("u1", models.CartItem{ProductID: "cap_001", Quantity: 1})
			}
		}()
	}
	wg.Wait()

	cart, err := repo.GetByUser("u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers*addsPerWorker, cart.Items[0].Quantity)
}
