package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

var ErrConsultantNotFound = errors.New("consultant not found")

// ConsultantFilter narrows the public consultant listing.
type ConsultantFilter struct {
	Location string
	Status   string
}

type ConsultantRepository interface {
	Create(db *gorm.DB, consultant *models.Consultant) error
	FindByID(db *gorm.DB, id string) (*models.Consultant, error)
	FindByNamePhone(db *gorm.DB, name, phone string) (*models.Consultant, error)
	FindAll(db *gorm.DB, filter ConsultantFilter) ([]models.Consultant, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Consultant, error)
	Update(db *gorm.DB, consultant *models.Consultant) error
	Delete(db *gorm.DB, id string) error
}

type consultantRepository struct{}

func NewConsultantRepository() ConsultantRepository {
	return &consultantRepository{}
}

func (r *consultantRepository) Create(db *gorm.DB, consultant *models.Consultant) error {
	return db.Create(consultant).Error
}

func (r *consultantRepository) FindByID(db *gorm.DB, id string) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := db.Where("id = ?", id).First(&consultant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsultantNotFound
		}
		return nil, err
	}
	return &consultant, nil
}

func (r *consultantRepository) FindByNamePhone(db *gorm.DB, name, phone string) (*models.Consultant, error) {
	var consultant models.Consultant
	if err := db.Where("name = ? AND phone = ?", name, phone).First(&consultant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsultantNotFound
		}
		return nil, err
	}
	return &consultant, nil
}

func (r *consultantRepository) FindAll(db *gorm.DB, filter ConsultantFilter) ([]models.Consultant, error) {
	query := db.Order("created_at DESC")
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var consultants []models.Consultant
	err := query.Find(&consultants).Error
	return consultants, err
}

func (r *consultantRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Consultant, error) {
	var consultants []models.Consultant
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&consultants).Error
	return consultants, err
}

func (r *consultantRepository) Update(db *gorm.DB, consultant *models.Consultant) error {
	return db.Save(consultant).Error
}

func (r *consultantRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Consultant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConsultantNotFound
	}
	return nil
}
