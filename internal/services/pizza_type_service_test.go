package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePizzaType(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaTypeService(db, nil)
	dough := createTestDough(t, db, "Classic", 10)

	created, err := service.CreatePizzaType(models.PizzaType{
		Name:    "Margherita",
		Price:   decimal.NewFromFloat(8.90),
		DoughID: dough.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// The referenced dough must exist
	_, err = service.CreatePizzaType(models.PizzaType{
		Name:    "Diavola",
		Price:   decimal.NewFromFloat(10.50),
		DoughID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Creating the same name again points at the stored row
	_, err = service.CreatePizzaType(models.PizzaType{
		Name:    "Margherita",
		Price:   decimal.NewFromFloat(9.90),
		DoughID: dough.ID,
	})
	existsErr, ok := AsExistsError(err)
	require.True(t, ok)
	assert.Equal(t, created.ID, existsErr.ID)
}

func TestUpdatePizzaType(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaTypeService(db, nil)
	dough := createTestDough(t, db, "Classic", 10)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough, nil)
	diavola := createTestPizzaType(t, db, "Diavola", 10.50, dough, nil)

	t.Run("same name updates in place", func(t *testing.T) {
		updated, createdNew, err := service.UpdatePizzaType(margherita.ID, models.PizzaType{
			Name:    "Margherita",
			Price:   decimal.NewFromFloat(9.20),
			DoughID: dough.ID,
		})
		require.NoError(t, err)
		assert.False(t, createdNew)
		assert.Equal(t, margherita.ID, updated.ID)

		got, err := service.GetPizzaTypeByID(margherita.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(9.20).Equal(got.Price))
	})

	t.Run("rename to taken name collides", func(t *testing.T) {
		_, _, err := service.UpdatePizzaType(margherita.ID, models.PizzaType{
			Name:    "Diavola",
			Price:   decimal.NewFromFloat(9.20),
			DoughID: dough.ID,
		})
		existsErr, ok := AsExistsError(err)
		require.True(t, ok)
		assert.Equal(t, diavola.ID, existsErr.ID)
	})

	t.Run("rename to free name creates a fresh row", func(t *testing.T) {
		renamed, createdNew, err := service.UpdatePizzaType(margherita.ID, models.PizzaType{
			Name:    "Capricciosa",
			Price:   decimal.NewFromFloat(11.00),
			DoughID: dough.ID,
		})
		require.NoError(t, err)
		assert.True(t, createdNew)
		assert.NotEqual(t, margherita.ID, renamed.ID)

		old, err := service.GetPizzaTypeByID(margherita.ID)
		require.NoError(t, err)
		assert.Equal(t, "Margherita", old.Name)
	})
}

func TestDeletePizzaType(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaTypeService(db, nil)
	dough := createTestDough(t, db, "Classic", 10)
	mozzarella := createTestTopping(t, db, "Mozzarella", 10)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough,
		map[*models.Topping]int{mozzarella: 2})

	require.NoError(t, service.DeletePizzaType(margherita.ID))
	_, err := service.GetPizzaTypeByID(margherita.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The topping quantity rows go with it
	var count int64
	require.NoError(t, db.Model(&models.PizzaTypeToppingQuantity{}).
		Where("pizza_type_id = ?", margherita.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, service.DeletePizzaType(margherita.ID), ErrNotFound)
}

func TestAddToppingQuantity(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaTypeService(db, nil)
	dough := createTestDough(t, db, "Classic", 10)
	mozzarella := createTestTopping(t, db, "Mozzarella", 10)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough, nil)

	_, err := service.AddToppingQuantity(margherita.ID, mozzarella.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = service.AddToppingQuantity(uuid.New(), mozzarella.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.AddToppingQuantity(margherita.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := service.AddToppingQuantity(margherita.ID, mozzarella.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, created.Quantity)

	// A second binding for the same topping redirects to the type's toppings
	_, err = service.AddToppingQuantity(margherita.ID, mozzarella.ID, 3)
	existsErr, ok := AsExistsError(err)
	require.True(t, ok)
	assert.Equal(t, margherita.ID, existsErr.ID)
}

func TestToppingsOfPizzaType(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaTypeService(db, nil)
	dough := createTestDough(t, db, "Classic", 10)
	mozzarella := createTestTopping(t, db, "Mozzarella", 10)
	basil := createTestTopping(t, db, "Basil", 10)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough,
		map[*models.Topping]int{mozzarella: 2, basil: 1})

	toppings, err := service.ToppingsOfPizzaType(margherita.ID)
	require.NoError(t, err)
	assert.Len(t, toppings, 2)

	joined, err := service.JoinedToppingsOfPizzaType(margherita.ID)
	require.NoError(t, err)
	require.Len(t, joined, 2)
	names := []string{joined[0].Name, joined[1].Name}
	assert.Contains(t, names, "Mozzarella")
	assert.Contains(t, names, "Basil")

	_, err = service.ToppingsOfPizzaType(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoughOfPizzaType(t *testing.T) {
	db := setupTestDB(t)
	service := NewPizzaTypeService(db, nil)
	dough := createTestDough(t, db, "Classic", 10)
	margherita := createTestPizzaType(t, db, "Margherita", 8.90, dough, nil)

	got, err := service.DoughOfPizzaType(margherita.ID)
	require.NoError(t, err)
	assert.Equal(t, dough.ID, got.ID)
	assert.Equal(t, "Classic", got.Name)
}

func TestPizzaTypeListingCache(t *testing.T) {
	db := setupTestDB(t)
	fake := newFakeCache()
	service := NewPizzaTypeService(db, fake)
	dough := createTestDough(t, db, "Classic", 10)
	createTestPizzaType(t, db, "Margherita", 8.90, dough, nil)

	first, err := service.GetAllPizzaTypes()
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, fake.sets)

	// A create through the service invalidates the cached listing
	_, err = service.CreatePizzaType(models.PizzaType{
		Name:    "Diavola",
		Price:   decimal.NewFromFloat(10.50),
		DoughID: dough.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.deletes)

	second, err := service.GetAllPizzaTypes()
	require.NoError(t, err)
	assert.Len(t, second, 2)
}
