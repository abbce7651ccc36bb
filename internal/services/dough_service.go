package services

import (
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoughService provides catalog operations on doughs. Creation is idempotent
// by name: a second create with an existing name yields an ExistsError
// pointing at the stored dough instead of a duplicate row.
type DoughService interface {
	GetAllDoughs() ([]models.Dough, error)
	GetDoughByID(id uuid.UUID) (*models.Dough, error)
	GetDoughByName(name string) (*models.Dough, error)
	CreateDough(dough models.Dough) (*models.Dough, error)
	// UpdateDough applies changed in place when the name is unchanged. A name
	// that collides with a different dough yields an ExistsError. Otherwise a
	// fresh row is created under the new name and the old row kept; the bool
	// result reports whether a new row was created.
	UpdateDough(id uuid.UUID, changed models.Dough) (*models.Dough, bool, error)
	DeleteDough(id uuid.UUID) error
}

type doughService struct {
	db *gorm.DB
}

// NewDoughService creates a new instance of DoughService
func NewDoughService(db *gorm.DB) DoughService {
	return &doughService{db: db}
}

func (s *doughService) GetAllDoughs() ([]models.Dough, error) {
	var doughs []models.Dough
	if err := s.db.Find(&doughs).Error; err != nil {
		return nil, err
	}
	return doughs, nil
}

func (s *doughService) GetDoughByID(id uuid.UUID) (*models.Dough, error) {
	var dough models.Dough
	if err := s.db.First(&dough, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &dough, nil
}

func (s *doughService) GetDoughByName(name string) (*models.Dough, error) {
	var dough models.Dough
	if err := s.db.First(&dough, "name = ?", name).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &dough, nil
}

func (s *doughService) CreateDough(dough models.Dough) (*models.Dough, error) {
	if existing, err := s.GetDoughByName(dough.Name); err == nil {
		return nil, &ExistsError{ID: existing.ID}
	} else if err != ErrNotFound {
		return nil, err
	}

	if err := s.db.Create(&dough).Error; err != nil {
		return nil, err
	}
	return &dough, nil
}

func (s *doughService) UpdateDough(id uuid.UUID, changed models.Dough) (*models.Dough, bool, error) {
	existing, err := s.GetDoughByID(id)
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

	if collision, err := s.GetDoughByName(changed.Name); err == nil {
		return nil, false, &ExistsError{ID: collision.ID}
	} else if err != ErrNotFound {
		return nil, false, err
	}

	// Renames create a fresh row under the new name; the old row stays.
	changed.ID = uuid.Nil
	if err := s.db.Create(&changed).Error; err != nil {
		return nil, false, err
	}
	return &changed, true, nil
}

func (s *doughService) DeleteDough(id uuid.UUID) error {
	result := s.db.Delete(&models.Dough{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
