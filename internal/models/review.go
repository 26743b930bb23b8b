package models

// Review references either a property or an agent, never both. The exactly-one
// rule is enforced at construction through dto.ReviewTarget; the columns stay
// nullable because the storage schema needs both foreign keys.
type Review struct {
	BaseModel
	UserID     string       `gorm:"not null;index" json:"userId"`
	PropertyID *string      `gorm:"index" json:"propertyId,omitempty"`
	AgentID    *string      `gorm:"index" json:"agentId,omitempty"`
	Rating     int          `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string       `gorm:"type:text" json:"comment"`
	Status     ReviewStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Likes      int          `gorm:"default:0" json:"likes"`
	Dislikes   int          `gorm:"default:0" json:"dislikes"`

	// Relations
	User     User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Property *Property     `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Agent    *AgentProfile `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}
