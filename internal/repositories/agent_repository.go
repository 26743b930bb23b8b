package repositories

import (
	"errors"

	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

var (
	ErrAgentNotFound           = errors.New("agent profile not found")
	ErrAgentAlreadyExists      = errors.New("agent profile already exists for this user")
	ErrRegistrationNumberTaken = errors.New("registration number already in use")
)

// AgentSortFields is the closed sort-key set for agent listings. Clauses are
// table-qualified because Search joins users, which carries the same
// created_at column.
var AgentSortFields = map[string]string{
	"newest":         "agent_profiles.created_at DESC",
	"oldest":         "agent_profiles.created_at ASC",
	"highest-rating": "agent_profiles.rating DESC",
	"lowest-rating":  "agent_profiles.rating ASC",
}

type AgentRepository interface {
	Create(profile *models.AgentProfile) error
	FindByID(id string) (*models.AgentProfile, error)
	FindByUserID(userID string) (*models.AgentProfile, error)
	Update(profile *models.AgentProfile) error
	UpdateFields(id string, fields map[string]interface{}) error

	// Search joins users so free-text search can cover names and email.
	Search(pred query.Predicate, order string, pg query.Page) ([]models.AgentProfile, int64, error)

	SetVerification(id string, status models.VerificationStatus) (*models.AgentProfile, error)
	RecalculateRating(id string) error
	CountByVerification(status models.VerificationStatus) (int64, error)
}

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(profile *models.AgentProfile) error {
	var existing models.AgentProfile
	if err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrAgentAlreadyExists
	}
	if err := r.db.Where("registration_number = ?", profile.RegistrationNumber).
		First(&existing).Error; err == nil {
		return ErrRegistrationNumberTaken
	}
	return r.db.Create(profile).Error
}

func (r *agentRepository) FindByID(id string) (*models.AgentProfile, error) {
	var profile models.AgentProfile
	err := r.db.
		Preload("User", publicUserFields).
		Preload("Properties", listingAgentProperties).
		Preload("Reviews", approvedAgentReviews).
		First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *agentRepository) FindByUserID(userID string) (*models.AgentProfile, error) {
	var profile models.AgentProfile
	err := r.db.
		Preload("User", publicUserFields).
		Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *agentRepository) Update(profile *models.AgentProfile) error {
	return r.db.Save(profile).Error
}

func (r *agentRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.AgentProfile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAgentNotFound
	}
	return nil
}

func (r *agentRepository) Search(pred query.Predicate, order string, pg query.Page) ([]models.AgentProfile, int64, error) {
	base := func() *gorm.DB {
		return r.db.Model(&models.AgentProfile{}).
			Joins("LEFT JOIN users ON users.id = agent_profiles.user_id")
	}

	var total int64
	if err := pred.Apply(base()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.AgentProfile
	err := pred.Apply(base()).
		Preload("User", publicUserFields).
		Preload("Properties", listingAgentProperties).
		Preload("Reviews", approvedAgentReviews).
		Order(order).
		Scopes(pg.Scope).
		Find(&profiles).Error

	return profiles, total, err
}

// SetVerification is idempotent: setting the current status again succeeds
// without touching the row.
func (r *agentRepository) SetVerification(id string, status models.VerificationStatus) (*models.AgentProfile, error) {
	profile, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if profile.Verification == status {
		return profile, nil
	}

	if err := r.db.Model(&models.AgentProfile{}).Where("id = ?", id).
		Update("verification", status).Error; err != nil {
		return nil, err
	}
	profile.Verification = status
	return profile, nil
}

func (r *agentRepository) RecalculateRating(id string) error {
	var avg float64
	err := r.db.Model(&models.Review{}).
		Where("agent_id = ? AND status = ?", id, models.ReviewStatusApproved).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error
	if err != nil {
		return err
	}
	return r.db.Model(&models.AgentProfile{}).Where("id = ?", id).
		Update("rating", avg).Error
}

func (r *agentRepository) CountByVerification(status models.VerificationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.AgentProfile{}).Where("verification = ?", status).Count(&count).Error
	return count, err
}

// listingAgentProperties bounds the preloaded listing set to the columns the
// projector aggregates over; never the agent's full history with relations.
func listingAgentProperties(db *gorm.DB) *gorm.DB {
	return db.Select("id", "agent_id", "price", "status", "created_at")
}

// approvedAgentReviews bounds the preloaded review set to what the projector
// counts: approved reviews only, key columns only.
func approvedAgentReviews(db *gorm.DB) *gorm.DB {
	return db.Select("id", "agent_id", "status").
		Where("status = ?", string(models.ReviewStatusApproved))
}
