package services

import (
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ToppingService provides catalog operations on toppings, with the same
// idempotency-by-name rules as DoughService.
type ToppingService interface {
	GetAllToppings() ([]models.Topping, error)
	GetToppingByID(id uuid.UUID) (*models.Topping, error)
	GetToppingByName(name string) (*models.Topping, error)
	CreateTopping(topping models.Topping) (*models.Topping, error)
	UpdateTopping(id uuid.UUID, changed models.Topping) (*models.Topping, bool, error)
	DeleteTopping(id uuid.UUID) error
}

type toppingService struct {
	db *gorm.DB
}

// NewToppingService creates a new instance of ToppingService
func NewToppingService(db *gorm.DB) ToppingService {
	return &toppingService{db: db}
}

func (s *toppingService) GetAllToppings() ([]models.Topping, error) {
	var toppings []models.Topping
	if err := s.db.Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

func (s *toppingService) GetToppingByID(id uuid.UUID) (*models.Topping, error) {
	var topping models.Topping
	if err := s.db.First(&topping, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &topping, nil
}

func (s *toppingService) GetToppingByName(name string) (*models.Topping, error) {
	var topping models.Topping
	if err := s.db.First(&topping, "name = ?", name).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &topping, nil
}

func (s *toppingService) CreateTopping(topping models.Topping) (*models.Topping, error) {
	if existing, err := s.GetToppingByName(topping.Name); err == nil {
		return nil, &ExistsError{ID: existing.ID}
	} else if err != ErrNotFound {
		return nil, err
	}

	if err := s.db.Create(&topping).Error; err != nil {
		return nil, err
	}
	return &topping, nil
}

func (s *toppingService) UpdateTopping(id uuid.UUID, changed models.Topping) (*models.Topping, bool, error) {
	existing, err := s.GetToppingByID(id)
	if err != nil {
		return nil, false, err
	}

	if existing.Name == changed.Name {
		changed.ID = existing.ID
		if err := s.db.Save(&changed).Error; err != nil {
			return nil, false, err
		}
		return &changed, false, nil
	}

	if collision, err := s.GetToppingByName(changed.Name); err == nil {
		return nil, false, &ExistsError{ID: collision.ID}
	} else if err != ErrNotFound {
		return nil, false, err
	}

	changed.ID = uuid.Nil
	if err := s.db.Create(&changed).Error; err != nil {
		return nil, false, err
	}
	return &changed, true, nil
}

func (s *toppingService) DeleteTopping(id uuid.UUID) error {
	result := s.db.Delete(&models.Topping{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
