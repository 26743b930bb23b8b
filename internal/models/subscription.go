package models

import "time"

type SubscriptionPlan struct {
	BaseModel
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
	DurationDays int     `gorm:"not null" json:"durationDays"`
	ListingLimit int     `gorm:"not null" json:"listingLimit"`
	Description  string  `json:"description"`
	IsActive     bool    `gorm:"default:true" json:"isActive"`
}

type AgentSubscription struct {
	BaseModel
	AgentID   string             `gorm:"not null;index" json:"agentId"`
	PlanID    string             `gorm:"not null" json:"planId"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	StartDate time.Time          `gorm:"not null" json:"startDate"`
	EndDate   time.Time          `gorm:"not null;index" json:"endDate"`
	AutoRenew bool               `gorm:"default:false" json:"autoRenew"`

	Plan     SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Payments []Payment        `gorm:"foreignKey:SubscriptionID" json:"payments,omitempty"`
}

type Payment struct {
	BaseModel
	AgentID        string        `gorm:"not null;index" json:"agentId"`
	SubscriptionID *string       `gorm:"index" json:"subscriptionId,omitempty"`
	Amount         float64       `gorm:"not null" json:"amount"`
	Method         string        `gorm:"not null" json:"method"`
	Status         PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Reference      string        `gorm:"uniqueIndex" json:"reference"`
}
