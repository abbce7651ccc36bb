package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientsAvailable(t *testing.T) {
	db := setupTestDB(t)
	stock := NewStockService(db)

	dough := createTestDough(t, db, "Classic", 1)
	mozzarella := createTestTopping(t, db, "Mozzarella", 2)
	basil := createTestTopping(t, db, "Basil", 1)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough,
		map[*models.Topping]int{mozzarella: 2, basil: 1})

	pizzaType, err := getPizzaType(db, margherita.ID)
	require.NoError(t, err)

	assert.True(t, stock.IngredientsAvailable(pizzaType))

	// A topping below its required quantity makes the whole type unavailable
	require.NoError(t, db.Model(&models.Topping{}).
		Where("id = ?", mozzarella.ID).Update("stock", 1).Error)
	pizzaType, err = getPizzaType(db, pizzaType.ID)
	require.NoError(t, err)
	assert.False(t, stock.IngredientsAvailable(pizzaType))

	// Dough at zero blocks regardless of topping stock
	require.NoError(t, db.Model(&models.Topping{}).
		Where("id = ?", mozzarella.ID).Update("stock", 10).Error)
	require.NoError(t, db.Model(&models.Dough{}).
		Where("id = ?", dough.ID).Update("stock", 0).Error)
	pizzaType, err = getPizzaType(db, pizzaType.ID)
	require.NoError(t, err)
	assert.False(t, stock.IngredientsAvailable(pizzaType))
}

func TestReduceAndRestoreIngredients(t *testing.T) {
	db := setupTestDB(t)
	stock := NewStockService(db)

	dough := createTestDough(t, db, "Classic", 3)
	mozzarella := createTestTopping(t, db, "Mozzarella", 5)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough,
		map[*models.Topping]int{mozzarella: 2})

	pizzaType, err := getPizzaType(db, margherita.ID)
	require.NoError(t, err)
	orderID := uuid.New()

	require.NoError(t, stock.ReduceIngredients(pizzaType, orderID))
	assert.Equal(t, 2, doughStock(t, db, dough.ID))
	assert.Equal(t, 3, toppingStock(t, db, mozzarella.ID))

	require.NoError(t, stock.RestoreIngredients(pizzaType, orderID))
	assert.Equal(t, 3, doughStock(t, db, dough.ID))
	assert.Equal(t, 5, toppingStock(t, db, mozzarella.ID))

	// Four journal rows: one per resource per call
	var movements []models.StockMovement
	require.NoError(t, db.Where("order_id = ?", orderID).Order("id").Find(&movements).Error)
	require.Len(t, movements, 4)
	assert.Equal(t, models.StockResourceDough, movements[0].Resource)
	assert.Equal(t, -1, movements[0].Delta)
	assert.Equal(t, models.StockResourceTopping, movements[1].Resource)
	assert.Equal(t, -2, movements[1].Delta)
	assert.Equal(t, 1, movements[2].Delta)
	assert.Equal(t, 2, movements[3].Delta)
}

func TestReduceIngredientsInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	stock := NewStockService(db)

	dough := createTestDough(t, db, "Classic", 1)
	mozzarella := createTestTopping(t, db, "Mozzarella", 1)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough,
		map[*models.Topping]int{mozzarella: 2})

	pizzaType, err := getPizzaType(db, margherita.ID)
	require.NoError(t, err)

	err = stock.ReduceIngredients(pizzaType, uuid.New())
	assert.ErrorIs(t, err, ErrConflict)

	// The guarded update never drove a counter negative
	assert.Equal(t, 1, toppingStock(t, db, mozzarella.ID))
}

func TestBeverageAvailable(t *testing.T) {
	db := setupTestDB(t)
	stock := NewStockService(db)

	beverage := createTestBeverage(t, db, "Cola", 2.20, 3)

	available, err := stock.BeverageAvailable(beverage.ID, 3)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = stock.BeverageAvailable(beverage.ID, 4)
	require.NoError(t, err)
	assert.False(t, available)

	_, err = stock.BeverageAvailable(uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeBeverageStock(t *testing.T) {
	db := setupTestDB(t)
	stock := NewStockService(db)

	beverage := createTestBeverage(t, db, "Cola", 2.20, 10)
	orderID := uuid.New()

	require.NoError(t, stock.ChangeBeverageStock(beverage.ID, &orderID, -4))
	assert.Equal(t, 6, beverageStock(t, db, beverage.ID))

	// Decrement beyond the counter fails and leaves it unchanged
	err := stock.ChangeBeverageStock(beverage.ID, &orderID, -7)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 6, beverageStock(t, db, beverage.ID))

	require.NoError(t, stock.ChangeBeverageStock(beverage.ID, &orderID, 4))
	assert.Equal(t, 10, beverageStock(t, db, beverage.ID))

	// Zero delta is a no-op with no journal row
	require.NoError(t, stock.ChangeBeverageStock(beverage.ID, nil, 0))
	var count int64
	require.NoError(t, db.Model(&models.StockMovement{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Increment on an unknown beverage is not found
	err = stock.ChangeBeverageStock(uuid.New(), nil, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
