package models

// Contact is a freeform inquiry, optionally linked to a user, agent or
// property. Status follows new -> contacted -> qualified -> converted|archived.
type Contact struct {
	BaseModel
	Name       string        `gorm:"not null" json:"name"`
	Email      string        `gorm:"not null" json:"email"`
	Phone      string        `json:"phone"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	Status     ContactStatus `gorm:"type:varchar(20);default:'new';index" json:"status"`
	UserID     *string       `gorm:"index" json:"userId,omitempty"`
	AgentID    *string       `gorm:"index" json:"agentId,omitempty"`
	PropertyID *string       `gorm:"index" json:"propertyId,omitempty"`

	Property *Property     `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Agent    *AgentProfile `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

// contactTransitions lists the allowed status moves.
var contactTransitions = map[ContactStatus][]ContactStatus{
	ContactStatusNew:       {ContactStatusContacted, ContactStatusArchived},
	ContactStatusContacted: {ContactStatusQualified, ContactStatusArchived},
	ContactStatusQualified: {ContactStatusConverted, ContactStatusArchived},
}

// CanTransitionTo reports whether the contact may move to the target status.
func (c *Contact) CanTransitionTo(target ContactStatus) bool {
	for _, allowed := range contactTransitions[c.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}
