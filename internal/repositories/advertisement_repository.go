package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

var ErrAdvertisementNotFound = errors.New("advertisement not found")

type AdvertisementRepository interface {
	Create(db *gorm.DB, ad *models.Advertisement) error
	FindByID(db *gorm.DB, id string) (*models.Advertisement, error)
	FindAll(db *gorm.DB, pageKey string) ([]models.Advertisement, error)
	Update(db *gorm.DB, ad *models.Advertisement) error
	Delete(db *gorm.DB, id string) error
}

type advertisementRepository struct{}

func NewAdvertisementRepository() AdvertisementRepository {
	return &advertisementRepository{}
}

func (r *advertisementRepository) Create(db *gorm.DB, ad *models.Advertisement) error {
	return db.Create(ad).Error
}

func (r *advertisementRepository) FindByID(db *gorm.DB, id string) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := db.Where("id = ?", id).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvertisementNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *advertisementRepository) FindAll(db *gorm.DB, pageKey string) ([]models.Advertisement, error) {
	query := db.Order("position ASC, created_at DESC")
	if pageKey != "" {
		query = query.Where("page_key = ?", pageKey)
	}

	var ads []models.Advertisement
	err := query.Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) Update(db *gorm.DB, ad *models.Advertisement) error {
	return db.Save(ad).Error
}

func (r *advertisementRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Advertisement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdvertisementNotFound
	}
	return nil
}
