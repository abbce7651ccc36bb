package services

import (
	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService provides user accounts and their order history queries.
type UserService interface {
	GetAllUsers() ([]models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user models.User) (*models.User, error)
	UpdateUser(id uuid.UUID, changed models.User) (*models.User, bool, error)
	DeleteUser(id uuid.UUID) error

	// OrderHistory returns the user's COMPLETED orders.
	OrderHistory(userID uuid.UUID) ([]models.Order, error)
	// OpenOrders returns the user's orders that are not yet COMPLETED.
	OpenOrders(userID uuid.UUID) ([]models.Order, error)
	// AllOpenOrders returns every order that is not yet COMPLETED.
	AllOpenOrders() ([]models.Order, error)
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (s *userService) CreateUser(user models.User) (*models.User, error) {
	if existing, err := s.GetUserByUsername(user.Username); err == nil {
		return nil, &ExistsError{ID: existing.ID}
	} else if err != ErrNotFound {
		return nil, err
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateUser(id uuid.UUID, changed models.User) (*models.User, bool, error) {
	existing, err := s.GetUserByID(id)
	if err != nil {
		return nil, false, err
	}

	if existing.Username == changed.Username {
		changed.ID = existing.ID
		if err := s.db.Save(&changed).Error; err != nil {
			return nil, false, err
		}
		return &changed, false, nil
	}

	if collision, err := s.GetUserByUsername(changed.Username); err == nil {
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

func (s *userService) DeleteUser(id uuid.UUID) error {
	result := s.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userService) OrderHistory(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Address").
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *userService) OpenOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Address").
		Where("user_id = ? AND status <> ?", userID, models.StatusCompleted).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *userService) AllOpenOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Address").
		Where("status <> ?", models.StatusCompleted).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
