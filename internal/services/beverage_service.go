package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/cache"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const beverageListCacheKey = "catalog:beverages"

// BeverageService provides catalog operations on beverages. The full listing
// is served through the cache when one is configured; any mutation drops the
// cached listing.
type BeverageService interface {
	GetAllBeverages() ([]models.Beverage, error)
	GetBeverageByID(id uuid.UUID) (*models.Beverage, error)
	GetBeverageByName(name string) (*models.Beverage, error)
	CreateBeverage(beverage models.Beverage) (*models.Beverage, error)
	UpdateBeverage(id uuid.UUID, changed models.Beverage) (*models.Beverage, bool, error)
	DeleteBeverage(id uuid.UUID) error
}

type beverageService struct {
	db    *gorm.DB
	cache cache.Client
}

// NewBeverageService creates a new instance of BeverageService. A nil cache
// disables caching.
func NewBeverageService(db *gorm.DB, cacheClient cache.Client) BeverageService {
	return &beverageService{db: db, cache: cacheClient}
}

func (s *beverageService) GetAllBeverages() ([]models.Beverage, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(context.Background(), beverageListCacheKey); err == nil {
			var beverages []models.Beverage
			if err := json.Unmarshal([]byte(cached), &beverages); err == nil {
				return beverages, nil
			}
		}
	}

	var beverages []models.Beverage
	if err := s.db.Find(&beverages).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(beverages); err == nil {
			if err := s.cache.Set(context.Background(), beverageListCacheKey, payload, 5*time.Minute); err != nil {
				logrus.WithError(err).Warn("Failed to cache beverage listing")
			}
		}
	}
	return beverages, nil
}

func (s *beverageService) GetBeverageByID(id uuid.UUID) (*models.Beverage, error) {
	var beverage models.Beverage
	if err := s.db.First(&beverage, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &beverage, nil
}

func (s *beverageService) GetBeverageByName(name string) (*models.Beverage, error) {
	var beverage models.Beverage
	if err := s.db.First(&beverage, "name = ?", name).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &beverage, nil
}

func (s *beverageService) CreateBeverage(beverage models.Beverage) (*models.Beverage, error) {
	if existing, err := s.GetBeverageByName(beverage.Name); err == nil {
		return nil, &ExistsError{ID: existing.ID}
	} else if err != ErrNotFound {
		return nil, err
	}

	if err := s.db.Create(&beverage).Error; err != nil {
		return nil, err
	}
	s.invalidateListing()
	return &beverage, nil
}

func (s *beverageService) UpdateBeverage(id uuid.UUID, changed models.Beverage) (*models.Beverage, bool, error) {
	existing, err := s.GetBeverageByID(id)
	if err != nil {
		return nil, false, err
	}

	if existing.Name == changed.Name {
		changed.ID = existing.ID
		if err := s.db.Save(&changed).Error; err != nil {
			return nil, false, err
		}
		s.invalidateListing()
		return &changed, false, nil
	}

	if collision, err := s.GetBeverageByName(changed.Name); err == nil {
		return nil, false, &ExistsError{ID: collision.ID}
	} else if err != ErrNotFound {
		return nil, false, err
	}

	changed.ID = uuid.Nil
	if err := s.db.Create(&changed).Error; err != nil {
		return nil, false, err
	}
	s.invalidateListing()
	return &changed, true, nil
}

func (s *beverageService) DeleteBeverage(id uuid.UUID) error {
	result := s.db.Delete(&models.Beverage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.invalidateListing()
	return nil
}

func (s *beverageService) invalidateListing() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), beverageListCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate beverage listing cache")
	}
}
