package models

import (
	"github.com/lib/pq"
)

// AgentProfile extends a User with role agent. A user with the agent role
// may exist without a profile until the second signup phase completes.
type AgentProfile struct {
	BaseModel
	UserID             string             `gorm:"uniqueIndex;not null" json:"userId"`
	RegistrationNumber string             `gorm:"uniqueIndex;not null" json:"registrationNumber"`
	Verification       VerificationStatus `gorm:"type:varchar(20);default:'pending'" json:"verification"`
	AgencyName         string             `json:"agencyName"`
	Bio                string             `json:"bio"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Specialties        pq.StringArray     `gorm:"type:text[]" json:"specialties"`
	YearsExperience    int                `gorm:"default:0" json:"yearsExperience"`
	CommissionRate     float64            `gorm:"default:0" json:"commissionRate"`
	ListingLimit       int                `gorm:"default:25" json:"listingLimit"`
	Plan               string             `gorm:"default:'basic'" json:"plan"`
	BankName           string             `json:"-"`
	BankAccount        string             `json:"-"`
	Rating             float64            `gorm:"default:0" json:"rating"`

	// Relations
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Properties []Property `gorm:"foreignKey:AgentID" json:"properties,omitempty"`
	Reviews    []Review   `gorm:"foreignKey:AgentID" json:"reviews,omitempty"`
}
