package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/cache"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const pizzaTypeListCacheKey = "catalog:pizza_types"

// PizzaTypeService provides catalog operations on pizza types and their
// topping-quantity lists. Creation and topping assignment are idempotent by
// natural key, surfacing an ExistsError instead of creating duplicates.
type PizzaTypeService interface {
	GetAllPizzaTypes() ([]models.PizzaType, error)
	GetPizzaTypeByID(id uuid.UUID) (*models.PizzaType, error)
	GetPizzaTypeByName(name string) (*models.PizzaType, error)
	// CreatePizzaType requires the referenced dough to exist.
	CreatePizzaType(pizzaType models.PizzaType) (*models.PizzaType, error)
	UpdatePizzaType(id uuid.UUID, changed models.PizzaType) (*models.PizzaType, bool, error)
	DeletePizzaType(id uuid.UUID) error

	// AddToppingQuantity binds a topping to the pizza type with a per-pizza
	// quantity. An existing (pizza type, topping) pair yields an ExistsError
	// pointing at the pizza type's topping collection.
	AddToppingQuantity(pizzaTypeID, toppingID uuid.UUID, quantity int) (*models.PizzaTypeToppingQuantity, error)
	ToppingsOfPizzaType(pizzaTypeID uuid.UUID) ([]models.PizzaTypeToppingQuantity, error)
	JoinedToppingsOfPizzaType(pizzaTypeID uuid.UUID) ([]models.JoinedToppingQuantity, error)
	DoughOfPizzaType(pizzaTypeID uuid.UUID) (*models.Dough, error)
}

type pizzaTypeService struct {
	db    *gorm.DB
	cache cache.Client
}

// NewPizzaTypeService creates a new instance of PizzaTypeService. A nil
// cache disables caching.
func NewPizzaTypeService(db *gorm.DB, cacheClient cache.Client) PizzaTypeService {
	return &pizzaTypeService{db: db, cache: cacheClient}
}

func (s *pizzaTypeService) GetAllPizzaTypes() ([]models.PizzaType, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(context.Background(), pizzaTypeListCacheKey); err == nil {
			var pizzaTypes []models.PizzaType
			if err := json.Unmarshal([]byte(cached), &pizzaTypes); err == nil {
				return pizzaTypes, nil
			}
		}
	}

	var pizzaTypes []models.PizzaType
	if err := s.db.Preload("Toppings").Find(&pizzaTypes).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(pizzaTypes); err == nil {
			if err := s.cache.Set(context.Background(), pizzaTypeListCacheKey, payload, 5*time.Minute); err != nil {
				logrus.WithError(err).Warn("Failed to cache pizza type listing")
			}
		}
	}
	return pizzaTypes, nil
}

func (s *pizzaTypeService) GetPizzaTypeByID(id uuid.UUID) (*models.PizzaType, error) {
	return getPizzaType(s.db, id)
}

func (s *pizzaTypeService) GetPizzaTypeByName(name string) (*models.PizzaType, error) {
	var pizzaType models.PizzaType
	if err := s.db.First(&pizzaType, "name = ?", name).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &pizzaType, nil
}

func (s *pizzaTypeService) CreatePizzaType(pizzaType models.PizzaType) (*models.PizzaType, error) {
	if existing, err := s.GetPizzaTypeByName(pizzaType.Name); err == nil {
		return nil, &ExistsError{ID: existing.ID}
	} else if err != ErrNotFound {
		return nil, err
	}

	var dough models.Dough
	if err := s.db.First(&dough, "id = ?", pizzaType.DoughID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	if err := s.db.Omit("Dough").Create(&pizzaType).Error; err != nil {
		return nil, err
	}
	s.invalidateListing()
	return &pizzaType, nil
}

func (s *pizzaTypeService) UpdatePizzaType(id uuid.UUID, changed models.PizzaType) (*models.PizzaType, bool, error) {
	var existing models.PizzaType
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, false, notFoundOr(err)
	}

	if existing.Name == changed.Name {
		changed.ID = existing.ID
		err := s.db.Omit("Dough", "Toppings").Model(&models.PizzaType{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"name":        changed.Name,
				"price":       changed.Price,
				"description": changed.Description,
				"dough_id":    changed.DoughID,
			}).Error
		if err != nil {
			return nil, false, err
		}
		s.invalidateListing()
		return &changed, false, nil
	}

	if collision, err := s.GetPizzaTypeByName(changed.Name); err == nil {
		return nil, false, &ExistsError{ID: collision.ID}
	} else if err != ErrNotFound {
		return nil, false, err
	}

	// Renames create a fresh row under the new name; the old row stays.
	changed.ID = uuid.Nil
	created, err := s.CreatePizzaType(changed)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *pizzaTypeService) DeletePizzaType(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.PizzaType{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("pizza_type_id = ?", id).
			Delete(&models.PizzaTypeToppingQuantity{}).Error; err != nil {
			return err
		}
		s.invalidateListing()
		return nil
	})
}

func (s *pizzaTypeService) AddToppingQuantity(pizzaTypeID, toppingID uuid.UUID, quantity int) (*models.PizzaTypeToppingQuantity, error) {
	if quantity < 1 {
		return nil, ErrInvalidArgument
	}

	var pizzaType models.PizzaType
	if err := s.db.First(&pizzaType, "id = ?", pizzaTypeID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var topping models.Topping
	if err := s.db.First(&topping, "id = ?", toppingID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	var existing models.PizzaTypeToppingQuantity
	err := s.db.First(&existing, "pizza_type_id = ? AND topping_id = ?", pizzaTypeID, toppingID).Error
	if err == nil {
		return nil, &ExistsError{ID: pizzaTypeID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	toppingQuantity := models.PizzaTypeToppingQuantity{
		PizzaTypeID: pizzaTypeID,
		ToppingID:   toppingID,
		Quantity:    quantity,
	}
	if err := s.db.Create(&toppingQuantity).Error; err != nil {
		return nil, err
	}
	s.invalidateListing()
	return &toppingQuantity, nil
}

func (s *pizzaTypeService) ToppingsOfPizzaType(pizzaTypeID uuid.UUID) ([]models.PizzaTypeToppingQuantity, error) {
	var pizzaType models.PizzaType
	if err := s.db.First(&pizzaType, "id = ?", pizzaTypeID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var toppings []models.PizzaTypeToppingQuantity
	if err := s.db.Where("pizza_type_id = ?", pizzaTypeID).Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

func (s *pizzaTypeService) JoinedToppingsOfPizzaType(pizzaTypeID uuid.UUID) ([]models.JoinedToppingQuantity, error) {
	var pizzaType models.PizzaType
	if err := s.db.First(&pizzaType, "id = ?", pizzaTypeID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var toppings []models.JoinedToppingQuantity
	err := s.db.Table("pizza_type_topping_quantities").
		Select("pizza_type_topping_quantities.topping_id, toppings.name, toppings.price, toppings.description, pizza_type_topping_quantities.quantity").
		Joins("JOIN toppings ON toppings.id = pizza_type_topping_quantities.topping_id").
		Where("pizza_type_topping_quantities.pizza_type_id = ?", pizzaTypeID).
		Scan(&toppings).Error
	if err != nil {
		return nil, err
	}
	return toppings, nil
}

func (s *pizzaTypeService) DoughOfPizzaType(pizzaTypeID uuid.UUID) (*models.Dough, error) {
	pizzaType, err := getPizzaType(s.db, pizzaTypeID)
	if err != nil {
		return nil, err
	}
	return &pizzaType.Dough, nil
}

func (s *pizzaTypeService) invalidateListing() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), pizzaTypeListCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate pizza type listing cache")
	}
}
