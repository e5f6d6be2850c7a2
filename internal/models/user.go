package models

// User is the phone-keyed identity record. Deletion is soft: the row
// survives with IsDeleted set, and a later OTP verification revives it.
// TokenVersion is embedded into every issued token; bumping it
// invalidates all outstanding pairs at once.
type User struct {
	BaseModel
	Phone        string   `gorm:"uniqueIndex;not null" json:"phone"`
	Role         UserRole `gorm:"type:varchar(20)" json:"role"`
	TokenVersion int      `gorm:"not null;default:0" json:"tokenVersion"`
	IsDeleted    bool     `gorm:"not null;default:false" json:"isDeleted"`
	IsVerified   bool     `gorm:"not null;default:false" json:"isVerified"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
