package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	ListActivePlans() ([]models.SubscriptionPlan, error)
	FindPlanByID(id string) (*models.SubscriptionPlan, error)

	CreateSubscription(sub *models.AgentSubscription) error
	FindActiveByAgent(agentID string) (*models.AgentSubscription, error)
	CancelSubscription(id string) error

	CreatePayment(payment *models.Payment) error
	ListPayments(pred query.Predicate, pg query.Page) ([]models.Payment, int64, error)

	// ExpireOverdue marks active subscriptions past their end date as
	// expired and returns how many rows changed.
	ExpireOverdue() (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) ListActivePlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *subscriptionRepository) FindPlanByID(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *subscriptionRepository) CreateSubscription(sub *models.AgentSubscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) FindActiveByAgent(agentID string) (*models.AgentSubscription, error) {
	var sub models.AgentSubscription
	err := r.db.Preload("Plan").
		Where("agent_id = ? AND status = ?", agentID, models.SubscriptionStatusActive).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) CancelSubscription(id string) error {
	result := r.db.Model(&models.AgentSubscription{}).Where("id = ?", id).
		Update("status", models.SubscriptionStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *subscriptionRepository) ListPayments(pred query.Predicate, pg query.Page) ([]models.Payment, int64, error) {
	var total int64
	if err := pred.Apply(r.db.Model(&models.Payment{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := pred.Apply(r.db.Model(&models.Payment{})).
		Order("created_at DESC").
		Scopes(pg.Scope).
		Find(&payments).Error

	return payments, total, err
}

func (r *subscriptionRepository) ExpireOverdue() (int64, error) {
	result := r.db.Model(&models.AgentSubscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, time.Now()).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
