package models

import (
	"github.com/lib/pq"

	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
)

// Consultant is a directory entry for a paid advisor. Uniqueness is on
// (name, phone) rather than the owning identity alone.
type Consultant struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`

	Name           string         `gorm:"not null;uniqueIndex:idx_consultants_name_phone" json:"name"`
	Phone          string         `gorm:"not null;uniqueIndex:idx_consultants_name_phone" json:"phone"`
	Designation    string         `gorm:"not null" json:"designation"`
	Experience     int            `gorm:"not null" json:"experience"`
	Fee            float64        `gorm:"not null" json:"fee"`
	FeeType        FeeType        `gorm:"type:varchar(10);not null;default:'project'" json:"feeType"`
	Expertise      string         `gorm:"not null" json:"expertise"`
	Certifications string         `gorm:"default:''" json:"certifications"`
	Languages      pq.StringArray `gorm:"type:text[]" json:"languages"`

	Image   string `gorm:"not null" json:"image"`
	IDProof string `gorm:"not null" json:"idProof"`

	// Legacy single-line address fields kept alongside the detailed block.
	AddressText string `gorm:"column:address;default:''" json:"address"`
	Location    string `gorm:"not null;index" json:"location"`

	Address

	moderation.Review `gorm:"embedded"`
}
