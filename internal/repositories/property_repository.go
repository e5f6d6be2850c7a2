package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyFilter narrows the public property listing.
type PropertyFilter struct {
	City         string
	PropertyType string
	Status       string
}

type PropertyRepository interface {
	Create(db *gorm.DB, property *models.Property) error
	FindByID(db *gorm.DB, id string) (*models.Property, error)
	FindAll(db *gorm.DB, filter PropertyFilter) ([]models.Property, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Property, error)
	Update(db *gorm.DB, property *models.Property) error
	Delete(db *gorm.DB, id string) error
}

type propertyRepository struct{}

func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{}
}

func (r *propertyRepository) Create(db *gorm.DB, property *models.Property) error {
	return db.Create(property).Error
}

func (r *propertyRepository) FindByID(db *gorm.DB, id string) (*models.Property, error) {
	var property models.Property
	if err := db.Preload("User").Where("id = ?", id).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindAll(db *gorm.DB, filter PropertyFilter) ([]models.Property, error) {
	query := db.Preload("User").Order("created_at DESC")
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var properties []models.Property
	err := query.Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Update(db *gorm.DB, property *models.Property) error {
	return db.Save(property).Error
}

func (r *propertyRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
