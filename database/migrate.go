package database

import (
	"gorm.io/gorm"

	"github.com/myproparti-blip/My-pro-backend/internal/models"
)

// Migrate keeps the schema in sync with the model set.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Agent{},
		&models.Consultant{},
		&models.Advertisement{},
	)
}
