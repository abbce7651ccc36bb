package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database for one test. The shared-cache
// DSN keeps the database alive across the pooled connections gorm opens for
// transactions.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Dough{},
		&models.Topping{},
		&models.Beverage{},
		&models.PizzaType{},
		&models.PizzaTypeToppingQuantity{},
		&models.User{},
		&models.Address{},
		&models.Order{},
		&models.Pizza{},
		&models.OrderBeverageQuantity{},
		&models.StockMovement{},
	)
	require.NoError(t, err)

	return db
}

func createTestDough(t *testing.T, db *gorm.DB, name string, stock int) *models.Dough {
	dough := models.Dough{Name: name, Price: decimal.NewFromFloat(2.50), Stock: stock}
	require.NoError(t, db.Create(&dough).Error)
	return &dough
}

func createTestTopping(t *testing.T, db *gorm.DB, name string, stock int) *models.Topping {
	topping := models.Topping{Name: name, Price: decimal.NewFromFloat(1.20), Stock: stock}
	require.NoError(t, db.Create(&topping).Error)
	return &topping
}

func createTestBeverage(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Beverage {
	beverage := models.Beverage{Name: name, Price: decimal.NewFromFloat(price), Stock: stock}
	require.NoError(t, db.Create(&beverage).Error)
	return &beverage
}

// createTestPizzaType builds a pizza type over the given dough with one
// topping-quantity row per entry in quantities.
func createTestPizzaType(t *testing.T, db *gorm.DB, name string, price float64,
	dough *models.Dough, quantities map[*models.Topping]int) *models.PizzaType {
	pizzaType := models.PizzaType{Name: name, Price: decimal.NewFromFloat(price), DoughID: dough.ID}
	require.NoError(t, db.Omit("Dough").Create(&pizzaType).Error)
	for topping, quantity := range quantities {
		require.NoError(t, db.Create(&models.PizzaTypeToppingQuantity{
			PizzaTypeID: pizzaType.ID,
			ToppingID:   topping.ID,
			Quantity:    quantity,
		}).Error)
	}
	return &pizzaType
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := models.User{Username: username}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func testAddress() models.Address {
	return models.Address{
		Street:      "Calle Mayor",
		PostCode:    "28013",
		HouseNumber: 4,
		Country:     "Spain",
		Town:        "Madrid",
		FirstName:   "Ada",
		LastName:    "Lovelace",
	}
}

// createTestOrder opens an empty order for the user through the order service.
func createTestOrder(t *testing.T, db *gorm.DB, user *models.User) *models.Order {
	order, err := NewOrderService(db).CreateOrder(CreateOrderInput{
		UserID:  user.ID,
		Address: testAddress(),
	}, nil)
	require.NoError(t, err)
	return order
}

func doughStock(t *testing.T, db *gorm.DB, id interface{}) int {
	var dough models.Dough
	require.NoError(t, db.First(&dough, "id = ?", id).Error)
	return dough.Stock
}

func toppingStock(t *testing.T, db *gorm.DB, id interface{}) int {
	var topping models.Topping
	require.NoError(t, db.First(&topping, "id = ?", id).Error)
	return topping.Stock
}

func beverageStock(t *testing.T, db *gorm.DB, id interface{}) int {
	var beverage models.Beverage
	require.NoError(t, db.First(&beverage, "id = ?", id).Error)
	return beverage.Stock
}
