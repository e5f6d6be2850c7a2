package models

import (
	"github.com/lib/pq"

	"github.com/myproparti-blip/My-pro-backend/internal/moderation"
)

// Agent is a directory entry for a property dealer. One agent per phone
// number; the phone is copied from the owning identity and is immutable.
type Agent struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_agents_owner_name" json:"userId"`
	Phone  string `gorm:"uniqueIndex;not null" json:"phone"`

	AgentName          string         `gorm:"not null;uniqueIndex:idx_agents_owner_name" json:"agentName"`
	FirmName           string         `gorm:"default:''" json:"firmName"`
	OperatingCity      string         `gorm:"not null;index" json:"operatingCity"`
	OperatingAreaChips pq.StringArray `gorm:"type:text[]" json:"operatingAreaChips"`
	OperatingSince     string         `gorm:"default:''" json:"operatingSince"`
	TeamMembers        string         `gorm:"default:''" json:"teamMembers"`
	DealsIn            pq.StringArray `gorm:"type:text[]" json:"dealsIn"`
	DealsInOther       pq.StringArray `gorm:"type:text[]" json:"dealsInOther"`
	AboutAgent         string         `gorm:"default:''" json:"aboutAgent"`
	IsPropertyDealer   string         `gorm:"type:varchar(3);not null;default:'no'" json:"isPropertyDealer"`

	Image   string `gorm:"not null" json:"image"`
	IDProof string `gorm:"not null" json:"idProof"`

	// Legacy single-line address fields kept alongside the detailed block.
	AddressText string `gorm:"column:address;default:''" json:"address"`
	Location    string `gorm:"default:'';index" json:"location"`

	Address

	moderation.Review `gorm:"embedded"`
}
