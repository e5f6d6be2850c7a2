package models

import (
	"github.com/lib/pq"

	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
)

// Property is a listing submitted by an owner/seller and moderated by the
// administrator. Images and videos hold storage-relative paths; absolute
// URLs are produced at response time only.
type Property struct {
	BaseModel
	UserID       string  `gorm:"type:uuid;not null;index" json:"userId"`
	Title        string  `gorm:"not null" json:"title"`
	PropertyType string  `gorm:"not null;index" json:"propertyType"`
	Description  string  `gorm:"default:''" json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	Bedrooms     int     `gorm:"not null" json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	AreaSqft     float64 `json:"areaSqft"`

	Address

	Images pq.StringArray `gorm:"type:text[]" json:"images"`
	Videos pq.StringArray `gorm:"type:text[]" json:"videos"`

	moderation.Review `gorm:"embedded"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Address is the detailed address block shared by all listing kinds.
type Address struct {
	AddressLine1 string   `gorm:"default:''" json:"addressLine1"`
	AddressLine2 string   `gorm:"default:''" json:"addressLine2"`
	Landmark     string   `gorm:"default:''" json:"landmark"`
	Locality     string   `gorm:"default:''" json:"locality"`
	City         string   `gorm:"default:'';index" json:"city"`
	State        string   `gorm:"default:''" json:"state"`
	Country      string   `gorm:"default:'India'" json:"country"`
	Pincode      string   `gorm:"default:''" json:"pincode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}
