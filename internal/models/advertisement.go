package models

import (
	"gorm.io/datatypes"
)

// Advertisement is an admin-placed banner slot. A "multiple" ad bundles
// several files with per-file redirect targets in a JSON column.
type Advertisement struct {
	BaseModel
	Type        AdType                           `gorm:"type:varchar(10);not null" json:"type"`
	URL         string                           `gorm:"default:''" json:"url"`
	PublicID    string                           `gorm:"default:''" json:"public_id"`
	Position    int                              `gorm:"not null;default:0" json:"position"`
	PageKey     string                           `gorm:"not null;default:'default';index" json:"pageKey"`
	RedirectURL string                           `gorm:"default:''" json:"redirectUrl"`
	Files       datatypes.JSONSlice[AdFile]      `json:"files,omitempty"`
}

// AdFile is one entry of a "multiple" advertisement.
type AdFile struct {
	URL         string `json:"url"`
	PublicID    string `json:"public_id"`
	Type        AdType `json:"type"`
	RedirectURL string `json:"redirectUrl"`
}
