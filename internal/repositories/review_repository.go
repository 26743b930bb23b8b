package repositories

import (
	"errors"

	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this target")
)

// ReviewSortFields is the closed sort-key set for review listings.
var ReviewSortFields = map[string]string{
	"newest":         "created_at DESC",
	"oldest":         "created_at ASC",
	"highest-rating": "rating DESC",
	"lowest-rating":  "rating ASC",
}

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	Update(review *models.Review) error
	Delete(id string) error

	Search(pred query.Predicate, order string, pg query.Page) ([]models.Review, int64, error)

	// ExistsForTarget enforces the one-review-per-target rule; exactly one
	// of propertyID/agentID is non-nil.
	ExistsForTarget(userID string, propertyID, agentID *string) (bool, error)

	SetStatus(id string, status models.ReviewStatus) (*models.Review, error)
	IncrementReaction(id, column string) error
	CountByStatus(status models.ReviewStatus) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	exists, err := r.ExistsForTarget(review.UserID, review.PropertyID, review.AgentID)
	if err != nil {
		return err
	}
	if exists {
		return ErrReviewAlreadyExists
	}
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.
		Preload("User", publicUserFields).
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *models.Review) error {
	result := r.db.Model(review).Updates(map[string]interface{}{
		"rating":  review.Rating,
		"comment": review.Comment,
		"status":  review.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Search(pred query.Predicate, order string, pg query.Page) ([]models.Review, int64, error) {
	var total int64
	if err := pred.Apply(r.db.Model(&models.Review{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := pred.Apply(r.db.Model(&models.Review{})).
		Preload("User", publicUserFields).
		Order(order).
		Scopes(pg.Scope).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *reviewRepository) ExistsForTarget(userID string, propertyID, agentID *string) (bool, error) {
	q := r.db.Model(&models.Review{}).Where("user_id = ?", userID)
	switch {
	case propertyID != nil:
		q = q.Where("property_id = ?", *propertyID)
	case agentID != nil:
		q = q.Where("agent_id = ?", *agentID)
	default:
		return false, errors.New("review target missing")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) SetStatus(id string, status models.ReviewStatus) (*models.Review, error) {
	review, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if review.Status == status {
		return review, nil
	}

	if err := r.db.Model(&models.Review{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	review.Status = status
	return review, nil
}

// IncrementReaction bumps the likes or dislikes counter. column is one of
// the two fixed names, chosen by the service, never by the request.
func (r *reviewRepository) IncrementReaction(id, column string) error {
	result := r.db.Model(&models.Review{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) CountByStatus(status models.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
