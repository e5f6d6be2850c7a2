package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

var ErrAgentNotFound = errors.New("agent not found")

// AgentFilter narrows the public agent listing.
type AgentFilter struct {
	OperatingCity string
	Status        string
}

type AgentRepository interface {
	Create(db *gorm.DB, agent *models.Agent) error
	FindByID(db *gorm.DB, id string) (*models.Agent, error)
	FindByPhone(db *gorm.DB, phone string) (*models.Agent, error)
	FindAll(db *gorm.DB, filter AgentFilter) ([]models.Agent, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Agent, error)
	Update(db *gorm.DB, agent *models.Agent) error
	Delete(db *gorm.DB, id string) error
}

type agentRepository struct{}

func NewAgentRepository() AgentRepository {
	return &agentRepository{}
}

func (r *agentRepository) Create(db *gorm.DB, agent *models.Agent) error {
	return db.Create(agent).Error
}

func (r *agentRepository) FindByID(db *gorm.DB, id string) (*models.Agent, error) {
	var agent models.Agent
	if err := db.Where("id = ?", id).First(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) FindByPhone(db *gorm.DB, phone string) (*models.Agent, error) {
	var agent models.Agent
	if err := db.Where("phone = ?", phone).First(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) FindAll(db *gorm.DB, filter AgentFilter) ([]models.Agent, error) {
	query := db.Order("created_at DESC")
	if filter.OperatingCity != "" {
		query = query.Where("operating_city ILIKE ?", "%"+filter.OperatingCity+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var agents []models.Agent
	err := query.Find(&agents).Error
	return agents, err
}

func (r *agentRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Agent, error) {
	var agents []models.Agent
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&agents).Error
	return agents, err
}

func (r *agentRepository) Update(db *gorm.DB, agent *models.Agent) error {
	return db.Save(agent).Error
}

func (r *agentRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Agent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAgentNotFound
	}
	return nil
}
