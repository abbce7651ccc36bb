package services

import (
	"context"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/cache"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-process stand-in for the redis client.
type fakeCache struct {
	entries map[string]string
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	val, ok := c.entries[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.entries[key] = string(v)
	case string:
		c.entries[key] = v
	}
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	c.deletes++
	return nil
}

func TestBeverageServiceCRUD(t *testing.T) {
	db := setupTestDB(t)
	service := NewBeverageService(db, nil)

	created, err := service.CreateBeverage(models.Beverage{
		Name:  "Cola",
		Price: decimal.NewFromFloat(2.20),
		Stock: 30,
	})
	require.NoError(t, err)

	_, err = service.CreateBeverage(models.Beverage{Name: "Cola", Price: decimal.NewFromFloat(1.90)})
	existsErr, ok := AsExistsError(err)
	require.True(t, ok)
	assert.Equal(t, created.ID, existsErr.ID)

	byName, err := service.GetBeverageByName("Cola")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	updated, createdNew, err := service.UpdateBeverage(created.ID, models.Beverage{
		Name:  "Cola",
		Price: decimal.NewFromFloat(2.40),
		Stock: 25,
	})
	require.NoError(t, err)
	assert.False(t, createdNew)
	assert.True(t, decimal.NewFromFloat(2.40).Equal(updated.Price))

	require.NoError(t, service.DeleteBeverage(created.ID))
	_, err = service.GetBeverageByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, service.DeleteBeverage(uuid.New()), ErrNotFound)
}

func TestBeverageListingCache(t *testing.T) {
	db := setupTestDB(t)
	fake := newFakeCache()
	service := NewBeverageService(db, fake)

	createTestBeverage(t, db, "Cola", 2.20, 30)
	createTestBeverage(t, db, "Sparkling Water", 1.50, 20)

	// First listing fills the cache
	first, err := service.GetAllBeverages()
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, fake.sets)

	// Second listing is served from the cache even after a raw row change
	createTestBeverage(t, db, "Lemonade", 2.00, 10)
	second, err := service.GetAllBeverages()
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 1, fake.sets)

	// A mutation through the service drops the cached listing
	_, err = service.CreateBeverage(models.Beverage{
		Name:  "Iced Tea",
		Price: decimal.NewFromFloat(2.10),
		Stock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.deletes)

	third, err := service.GetAllBeverages()
	require.NoError(t, err)
	assert.Len(t, third, 4)
}
