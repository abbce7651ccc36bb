package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StockService is the stock ledger over doughs, toppings and beverages.
//
// All mutations are single conditional updates guarded by the current stock
// value and verified through the affected-row count, so a decrement can never
// push a counter below zero even when the caller's availability check raced.
// Each applied change appends one StockMovement row per touched resource.
type StockService interface {
	// IngredientsAvailable reports whether the pizza type's dough has stock
	// left and every required topping has at least its required quantity.
	// Read-only, no side effect.
	IngredientsAvailable(pizzaType *models.PizzaType) bool
	// ReduceIngredients decrements the dough stock by one and each topping's
	// stock by its required quantity. Returns ErrConflict if any counter
	// cannot cover the decrement; the caller's transaction must then roll
	// back so no partial decrement survives.
	ReduceIngredients(pizzaType *models.PizzaType, orderID uuid.UUID) error
	// RestoreIngredients is the inverse of ReduceIngredients, used when a
	// pizza is removed or its order is deleted.
	RestoreIngredients(pizzaType *models.PizzaType, orderID uuid.UUID) error
	// BeverageAvailable reports whether the beverage has at least quantity
	// units in stock.
	BeverageAvailable(beverageID uuid.UUID, quantity int) (bool, error)
	// ChangeBeverageStock applies stock += delta. A negative delta that the
	// current stock cannot cover fails with ErrConflict and leaves the
	// counter unchanged.
	ChangeBeverageStock(beverageID uuid.UUID, orderID *uuid.UUID, delta int) error
}

type stockService struct {
	db *gorm.DB
}

// NewStockService creates a stock ledger bound to the given database handle.
// Bind it to a transaction to scope its changes to that transaction.
func NewStockService(db *gorm.DB) StockService {
	return &stockService{db: db}
}

func (s *stockService) IngredientsAvailable(pizzaType *models.PizzaType) bool {
	if pizzaType.Dough.Stock == 0 {
		logrus.WithField("dough", pizzaType.Dough.Name).Warn("Stock for dough is zero")
		return false
	}
	for _, toppingQuantity := range pizzaType.Toppings {
		if toppingQuantity.Topping.Stock < toppingQuantity.Quantity {
			logrus.WithField("topping", toppingQuantity.Topping.Name).Warn("Not enough topping in stock")
			return false
		}
	}
	return true
}

func (s *stockService) ReduceIngredients(pizzaType *models.PizzaType, orderID uuid.UUID) error {
	if err := s.applyDelta(&models.Dough{}, models.StockResourceDough, pizzaType.DoughID, -1, &orderID); err != nil {
		return err
	}
	for _, toppingQuantity := range pizzaType.Toppings {
		if err := s.applyDelta(&models.Topping{}, models.StockResourceTopping,
			toppingQuantity.ToppingID, -toppingQuantity.Quantity, &orderID); err != nil {
			return err
		}
	}
	return nil
}

func (s *stockService) RestoreIngredients(pizzaType *models.PizzaType, orderID uuid.UUID) error {
	if err := s.applyDelta(&models.Dough{}, models.StockResourceDough, pizzaType.DoughID, 1, &orderID); err != nil {
		return err
	}
	for _, toppingQuantity := range pizzaType.Toppings {
		if err := s.applyDelta(&models.Topping{}, models.StockResourceTopping,
			toppingQuantity.ToppingID, toppingQuantity.Quantity, &orderID); err != nil {
			return err
		}
	}
	return nil
}

func (s *stockService) BeverageAvailable(beverageID uuid.UUID, quantity int) (bool, error) {
	var beverage models.Beverage
	if err := s.db.First(&beverage, "id = ?", beverageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return beverage.Stock >= quantity, nil
}

func (s *stockService) ChangeBeverageStock(beverageID uuid.UUID, orderID *uuid.UUID, delta int) error {
	return s.applyDelta(&models.Beverage{}, models.StockResourceBeverage, beverageID, delta, orderID)
}

// applyDelta performs the guarded counter update and appends the journal row.
// Decrements require the current stock to cover the full amount.
func (s *stockService) applyDelta(model interface{}, resource models.StockResource,
	id uuid.UUID, delta int, orderID *uuid.UUID) error {
	if delta == 0 {
		return nil
	}

	var result *gorm.DB
	if delta < 0 {
		needed := -delta
		result = s.db.Model(model).
			Where("id = ? AND stock >= ?", id, needed).
			UpdateColumn("stock", gorm.Expr("stock - ?", needed))
	} else {
		result = s.db.Model(model).
			Where("id = ?", id).
			UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if delta < 0 {
			logrus.WithFields(logrus.Fields{
				"resource":    resource,
				"resource_id": id,
				"delta":       delta,
			}).Warn("Stock cannot cover requested decrement")
			return ErrConflict
		}
		return ErrNotFound
	}

	movement := models.StockMovement{
		Resource:   resource,
		ResourceID: id,
		OrderID:    orderID,
		Delta:      delta,
	}
	return s.db.Create(&movement).Error
}
