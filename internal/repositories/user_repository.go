package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

var (
	// ErrUserNotFound is returned when no identity matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository covers persistence of phone-keyed identities.
type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByPhone(db *gorm.DB, phone string) (*models.User, error)
	FindAll(db *gorm.DB) ([]models.User, error)
	Update(db *gorm.DB, user *models.User) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(db *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}
