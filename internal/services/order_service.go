package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateOrderInput carries the fields needed to open a new order.
type CreateOrderInput struct {
	UserID  uuid.UUID
	Address models.Address
}

// OrderService owns the order aggregate: composition of pizzas and beverage
// lines against the stock ledger, pricing, lifecycle and the reorder copy.
// Every mutating operation runs in a single transaction, so a failure in a
// multi-step sequence leaves no partial state behind.
type OrderService interface {
	// CreateOrder creates an order in status TRANSMITTED for the given user.
	// When copyFrom is set, the template order's pizzas and beverage lines
	// are replayed against current stock; if any item is unavailable the
	// whole new order is rolled back and ErrConflict is returned.
	CreateOrder(input CreateOrderInput, copyFrom *uuid.UUID) (*models.Order, error)
	// GetOrdersByStatuses returns the union of orders whose status is in the
	// given set, or all orders when the set is empty.
	GetOrdersByStatuses(statuses []models.OrderStatus) ([]models.Order, error)
	GetOrderByID(id uuid.UUID) (*models.Order, error)
	// DeleteOrder restores the stock of every pizza and beverage line of the
	// order, then deletes the order with its lines and address.
	DeleteOrder(id uuid.UUID) error
	// SetOrderStatus sets the order's status. No transition graph is
	// enforced; any known status may follow any other.
	SetOrderStatus(id uuid.UUID, status models.OrderStatus) error
	UserOfOrder(id uuid.UUID) (*models.User, error)

	// AddPizza adds one pizza of the given type to the order, consuming the
	// type's dough and topping stock. ErrConflict when stock cannot cover it.
	AddPizza(orderID, pizzaTypeID uuid.UUID) (*models.Pizza, error)
	// PizzasOfOrder lists the order's pizzas joined with pizza type fields.
	PizzasOfOrder(orderID uuid.UUID) ([]models.JoinedPizza, error)
	// RemovePizza removes a pizza scoped to the given order and restores its
	// ingredient stock. A pizza id belonging to another order is ErrNotFound.
	RemovePizza(orderID, pizzaID uuid.UUID) error

	// AddBeverage adds a beverage line. Duplicate (order, beverage) pairs
	// return an ExistsError pointing at the order's beverage collection.
	AddBeverage(orderID, beverageID uuid.UUID, quantity int) (*models.OrderBeverageQuantity, error)
	BeveragesOfOrder(orderID uuid.UUID) ([]models.OrderBeverageQuantity, error)
	JoinedBeveragesOfOrder(orderID uuid.UUID) ([]models.JoinedBeverageQuantity, error)
	// UpdateBeverage sets a line to a new quantity, moving the difference
	// through the stock ledger. On ErrConflict the line stays unchanged.
	UpdateBeverage(orderID, beverageID uuid.UUID, quantity int) (*models.OrderBeverageQuantity, error)
	// RemoveBeverage deletes a line and restores its full quantity to stock.
	RemoveBeverage(orderID, beverageID uuid.UUID) error

	// PriceOfOrder computes the total price of the order's current contents.
	PriceOfOrder(orderID uuid.UUID) (decimal.Decimal, error)
}

type orderService struct {
	db *gorm.DB
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

func (s *orderService) CreateOrder(input CreateOrderInput, copyFrom *uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", input.UserID).Error; err != nil {
			return notFoundOr(err)
		}

		order = models.Order{
			UserID:  input.UserID,
			Address: input.Address,
			Status:  models.StatusTransmitted,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if copyFrom == nil {
			return nil
		}
		return s.copyOrderContents(tx, &order, *copyFrom)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
	}).Info("Order created")
	return &order, nil
}

// copyOrderContents replays the template order's items into the new order,
// re-validating every item against current stock. Returning an error rolls
// back the surrounding transaction, including the new order itself.
func (s *orderService) copyOrderContents(tx *gorm.DB, order *models.Order, templateID uuid.UUID) error {
	var template models.Order
	if err := tx.Preload("Pizzas").Preload("Beverages").
		First(&template, "id = ?", templateID).Error; err != nil {
		return notFoundOr(err)
	}

	stock := NewStockService(tx)
	for _, pizza := range template.Pizzas {
		pizzaType, err := getPizzaType(tx, pizza.PizzaTypeID)
		if err != nil {
			return err
		}
		if !stock.IngredientsAvailable(pizzaType) {
			logrus.WithField("pizza_type", pizzaType.Name).Warn("Insufficient stock while copying order")
			return ErrConflict
		}
		if err := stock.ReduceIngredients(pizzaType, order.ID); err != nil {
			return err
		}
		newPizza := models.Pizza{OrderID: order.ID, PizzaTypeID: pizzaType.ID}
		if err := tx.Create(&newPizza).Error; err != nil {
			return err
		}
	}

	for _, line := range template.Beverages {
		if err := stock.ChangeBeverageStock(line.BeverageID, &order.ID, -line.Quantity); err != nil {
			if errors.Is(err, ErrConflict) {
				logrus.WithField("beverage_id", line.BeverageID).Warn("Insufficient stock while copying order")
			}
			return err
		}
		newLine := models.OrderBeverageQuantity{
			OrderID:    order.ID,
			BeverageID: line.BeverageID,
			Quantity:   line.Quantity,
		}
		if err := tx.Create(&newLine).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) GetOrdersByStatuses(statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Preload("Address")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Address").Preload("Pizzas").Preload("Beverages").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &order, nil
}

func (s *orderService) DeleteOrder(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Pizzas").Preload("Beverages").
			First(&order, "id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}

		stock := NewStockService(tx)
		for _, pizza := range order.Pizzas {
			pizzaType, err := getPizzaType(tx, pizza.PizzaTypeID)
			if err != nil {
				return err
			}
			if err := stock.RestoreIngredients(pizzaType, order.ID); err != nil {
				return err
			}
		}
		for _, line := range order.Beverages {
			if err := stock.ChangeBeverageStock(line.BeverageID, &order.ID, line.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Pizza{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderBeverageQuantity{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, "id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Address{}, "id = ?", order.AddressID).Error
	})
}

func (s *orderService) SetOrderStatus(id uuid.UUID, status models.OrderStatus) error {
	result := s.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	logrus.WithFields(logrus.Fields{"order_id": id, "status": status}).Info("Order status updated")
	return nil
}

func (s *orderService) UserOfOrder(id uuid.UUID) (*models.User, error) {
	var order models.Order
	if err := s.db.Preload("User").First(&order, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &order.User, nil
}

func (s *orderService) AddPizza(orderID, pizzaTypeID uuid.UUID) (*models.Pizza, error) {
	var pizza models.Pizza
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := orderExists(tx, orderID); err != nil {
			return err
		}
		pizzaType, err := getPizzaType(tx, pizzaTypeID)
		if err != nil {
			return err
		}

		stock := NewStockService(tx)
		if !stock.IngredientsAvailable(pizzaType) {
			return ErrConflict
		}
		if err := stock.ReduceIngredients(pizzaType, orderID); err != nil {
			return err
		}

		pizza = models.Pizza{OrderID: orderID, PizzaTypeID: pizzaTypeID}
		return tx.Create(&pizza).Error
	})
	if err != nil {
		return nil, err
	}
	return &pizza, nil
}

func (s *orderService) PizzasOfOrder(orderID uuid.UUID) ([]models.JoinedPizza, error) {
	if err := orderExists(s.db, orderID); err != nil {
		return nil, err
	}
	var pizzas []models.JoinedPizza
	err := s.db.Table("pizzas").
		Select("pizzas.id, pizza_types.name, pizza_types.price, pizza_types.description, pizza_types.dough_id").
		Joins("JOIN pizza_types ON pizza_types.id = pizzas.pizza_type_id").
		Where("pizzas.order_id = ?", orderID).
		Scan(&pizzas).Error
	if err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *orderService) RemovePizza(orderID, pizzaID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := orderExists(tx, orderID); err != nil {
			return err
		}

		// Scoped to the order: a pizza id from another order is not found.
		var pizza models.Pizza
		if err := tx.First(&pizza, "id = ? AND order_id = ?", pizzaID, orderID).Error; err != nil {
			return notFoundOr(err)
		}

		pizzaType, err := getPizzaType(tx, pizza.PizzaTypeID)
		if err != nil {
			return err
		}
		if err := NewStockService(tx).RestoreIngredients(pizzaType, orderID); err != nil {
			return err
		}
		return tx.Delete(&models.Pizza{}, "id = ?", pizza.ID).Error
	})
}

func (s *orderService) AddBeverage(orderID, beverageID uuid.UUID, quantity int) (*models.OrderBeverageQuantity, error) {
	var line models.OrderBeverageQuantity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := orderExists(tx, orderID); err != nil {
			return err
		}
		if quantity < 1 {
			return ErrInvalidArgument
		}
		var beverage models.Beverage
		if err := tx.First(&beverage, "id = ?", beverageID).Error; err != nil {
			return notFoundOr(err)
		}

		var existing models.OrderBeverageQuantity
		err := tx.First(&existing, "order_id = ? AND beverage_id = ?", orderID, beverageID).Error
		if err == nil {
			// Duplicate line: redirect to the order's beverage collection.
			return &ExistsError{ID: orderID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		stock := NewStockService(tx)
		available, err := stock.BeverageAvailable(beverageID, quantity)
		if err != nil {
			return err
		}
		if !available {
			return ErrConflict
		}
		if err := stock.ChangeBeverageStock(beverageID, &orderID, -quantity); err != nil {
			return err
		}

		line = models.OrderBeverageQuantity{
			OrderID:    orderID,
			BeverageID: beverageID,
			Quantity:   quantity,
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *orderService) BeveragesOfOrder(orderID uuid.UUID) ([]models.OrderBeverageQuantity, error) {
	if err := orderExists(s.db, orderID); err != nil {
		return nil, err
	}
	var lines []models.OrderBeverageQuantity
	if err := s.db.Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *orderService) JoinedBeveragesOfOrder(orderID uuid.UUID) ([]models.JoinedBeverageQuantity, error) {
	if err := orderExists(s.db, orderID); err != nil {
		return nil, err
	}
	var lines []models.JoinedBeverageQuantity
	err := s.db.Table("order_beverage_quantities").
		Select("order_beverage_quantities.beverage_id, beverages.name, beverages.price, beverages.description, order_beverage_quantities.quantity").
		Joins("JOIN beverages ON beverages.id = order_beverage_quantities.beverage_id").
		Where("order_beverage_quantities.order_id = ?", orderID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *orderService) UpdateBeverage(orderID, beverageID uuid.UUID, quantity int) (*models.OrderBeverageQuantity, error) {
	var line models.OrderBeverageQuantity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := orderExists(tx, orderID); err != nil {
			return err
		}
		if quantity < 1 {
			return ErrInvalidArgument
		}
		if err := tx.First(&line, "order_id = ? AND beverage_id = ?", orderID, beverageID).Error; err != nil {
			return notFoundOr(err)
		}

		// A shrinking line returns units to stock, a growing one consumes
		// them; ErrConflict rolls the transaction back with the line intact.
		delta := line.Quantity - quantity
		if err := NewStockService(tx).ChangeBeverageStock(beverageID, &orderID, delta); err != nil {
			return err
		}

		line.Quantity = quantity
		return tx.Model(&models.OrderBeverageQuantity{}).
			Where("order_id = ? AND beverage_id = ?", orderID, beverageID).
			Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *orderService) RemoveBeverage(orderID, beverageID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := orderExists(tx, orderID); err != nil {
			return err
		}
		var line models.OrderBeverageQuantity
		if err := tx.First(&line, "order_id = ? AND beverage_id = ?", orderID, beverageID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := NewStockService(tx).ChangeBeverageStock(beverageID, &orderID, line.Quantity); err != nil {
			return err
		}
		return tx.Where("order_id = ? AND beverage_id = ?", orderID, beverageID).
			Delete(&models.OrderBeverageQuantity{}).Error
	})
}

func (s *orderService) PriceOfOrder(orderID uuid.UUID) (decimal.Decimal, error) {
	if err := orderExists(s.db, orderID); err != nil {
		return decimal.Zero, err
	}

	var beverageRows []struct {
		Price    decimal.Decimal
		Quantity int
	}
	err := s.db.Table("order_beverage_quantities").
		Select("beverages.price, order_beverage_quantities.quantity").
		Joins("JOIN beverages ON beverages.id = order_beverage_quantities.beverage_id").
		Where("order_beverage_quantities.order_id = ?", orderID).
		Scan(&beverageRows).Error
	if err != nil {
		return decimal.Zero, err
	}

	var pizzaRows []struct {
		Price decimal.Decimal
	}
	err = s.db.Table("pizzas").
		Select("pizza_types.price").
		Joins("JOIN pizza_types ON pizza_types.id = pizzas.pizza_type_id").
		Where("pizzas.order_id = ?", orderID).
		Scan(&pizzaRows).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, row := range beverageRows {
		total = total.Add(row.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	for _, row := range pizzaRows {
		total = total.Add(row.Price)
	}
	return total, nil
}

// orderExists checks that the order row is present, without loading lines.
func orderExists(db *gorm.DB, orderID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// getPizzaType loads a pizza type with its dough and topping quantities, the
// full ingredient set the stock ledger operates on.
func getPizzaType(db *gorm.DB, id uuid.UUID) (*models.PizzaType, error) {
	var pizzaType models.PizzaType
	if err := db.Preload("Dough").Preload("Toppings.Topping").
		First(&pizzaType, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &pizzaType, nil
}

// notFoundOr maps gorm's record-not-found to the service sentinel.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
