package models

import (
	"gorm.io/datatypes"
)

type Property struct {
	BaseModel
	AgentID     string         `gorm:"not null;index" json:"agentId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null;index" json:"price"`
	Address     string         `json:"address"`
	City        string         `gorm:"index" json:"city"`
	State       string         `gorm:"index" json:"state"`
	ZipCode     string         `json:"zipCode"`
	Bedrooms    int            `gorm:"default:0" json:"bedrooms"`
	Bathrooms   int            `gorm:"default:0" json:"bathrooms"`
	AreaSqFt    float64        `gorm:"default:0" json:"areaSqFt"`
	Type        PropertyType   `gorm:"type:varchar(20);not null" json:"type"`
	Status      PropertyStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"`   // ordered list of URLs
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"` // set of strings
	Views       int            `gorm:"default:0" json:"views"`

	// Relations
	Agent     AgentProfile `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Reviews   []Review     `gorm:"foreignKey:PropertyID" json:"reviews,omitempty"`
	Favorites []Favorite   `gorm:"foreignKey:PropertyID" json:"-"`
}
