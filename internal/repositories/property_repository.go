package repositories

import (
	"errors"

	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertySortFields is the closed sort-key set for property listings.
var PropertySortFields = map[string]string{
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"price-high": "price DESC",
	"price-low":  "price ASC",
}

type PropertyRepository interface {
	Create(property *models.Property) error
	FindByID(id string) (*models.Property, error)
	Update(property *models.Property) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error

	// Search runs the count and fetch pair over one predicate. The two
	// queries are not snapshot-isolated, so total may drift under
	// concurrent writes.
	Search(pred query.Predicate, order string, pg query.Page) ([]models.Property, int64, error)

	FindByAgent(agentID string, pg query.Page) ([]models.Property, int64, error)
	CountActiveByAgent(agentID string) (int64, error)
	CountByStatus(status models.PropertyStatus) (int64, error)
	IncrementViews(id string) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

func (r *propertyRepository) FindByID(id string) (*models.Property, error) {
	var property models.Property
	err := r.db.
		Preload("Agent").
		Preload("Agent.User", publicUserFields).
		First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

func (r *propertyRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Property{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) Search(pred query.Predicate, order string, pg query.Page) ([]models.Property, int64, error) {
	var total int64
	if err := pred.Apply(r.db.Model(&models.Property{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := pred.Apply(r.db.Model(&models.Property{})).
		Preload("Agent").
		Preload("Agent.User", publicUserFields).
		Order(order).
		Scopes(pg.Scope).
		Find(&properties).Error

	return properties, total, err
}

func (r *propertyRepository) FindByAgent(agentID string, pg query.Page) ([]models.Property, int64, error) {
	var total int64
	if err := r.db.Model(&models.Property{}).Where("agent_id = ?", agentID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := r.db.Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Scopes(pg.Scope).
		Find(&properties).Error

	return properties, total, err
}

func (r *propertyRepository) CountActiveByAgent(agentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).
		Where("agent_id = ? AND status IN ?", agentID,
			[]models.PropertyStatus{models.PropertyStatusPending, models.PropertyStatusActive}).
		Count(&count).Error
	return count, err
}

func (r *propertyRepository) CountByStatus(status models.PropertyStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *propertyRepository) IncrementViews(id string) error {
	return r.db.Model(&models.Property{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// publicUserFields bounds eager-loaded user rows to profile fields safe for
// any caller. The id must stay in the select for gorm to join the preload.
func publicUserFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email", "phone", "avatar_url")
}
