package models

type Favorite struct {
	BaseModel
	UserID     string `gorm:"not null;uniqueIndex:idx_user_property" json:"userId"`
	PropertyID string `gorm:"not null;uniqueIndex:idx_user_property" json:"propertyId"`

	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
