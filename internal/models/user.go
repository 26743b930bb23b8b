package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Phone             string     `json:"phone"`
	AvatarURL         string     `json:"avatarUrl"`
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Relations
	AgentProfile *AgentProfile `gorm:"foreignKey:UserID" json:"agentProfile,omitempty"`
	Favorites    []Favorite    `gorm:"foreignKey:UserID" json:"-"`
	Reviews      []Review      `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
