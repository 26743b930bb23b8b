package services

import (
	"context"
	"errors"

	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

// reviewPageSize is the default listing limit for review endpoints.
const reviewPageSize = 10

type ReviewService interface {
	List(ctx context.Context, viewer Viewer, filter dto.ReviewFilter) (*dto.ListResult[dto.ReviewResponse], error)
	Create(ctx context.Context, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, viewer Viewer, id string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, viewer Viewer, id string) error
	React(ctx context.Context, id string, like bool) error
	SetStatus(ctx context.Context, id string, status models.ReviewStatus) (*dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo   repositories.ReviewRepository
	propertyRepo repositories.PropertyRepository
	agentRepo    repositories.AgentRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	propertyRepo repositories.PropertyRepository,
	agentRepo repositories.AgentRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
	}
}

// List returns reviews for a target. Visitors see approved reviews only;
// admins may filter by any moderation status.
func (s *reviewService) List(ctx context.Context, viewer Viewer, filter dto.ReviewFilter) (*dto.ListResult[dto.ReviewResponse], error) {
	b := query.NewBuilder().
		Equals("property_id", filter.PropertyID).
		Equals("agent_id", filter.AgentID).
		MinInt("rating", "rating", filter.Rating).
		Period("created_at", filter.Period)

	if viewer.IsAdmin() {
		b.Enum("status", filter.Status, models.ValidReviewStatuses)
	} else {
		b.Where("status = ?", string(models.ReviewStatusApproved))
	}

	pred, err := b.Build()
	if err != nil {
		var be *query.BuildError
		if errors.As(err, &be) {
			return nil, apperrors.ValidationError(be.Fields)
		}
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, reviewPageSize)
	order := query.Order(filter.SortBy, repositories.ReviewSortFields, "newest")

	items, total, err := s.reviewRepo.Search(pred, order, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.ReviewResponse]{
		Items: dto.ToReviewResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

// Create validates the target, blocks self reviews and duplicates, and
// stores the review pending moderation.
func (s *reviewService) Create(ctx context.Context, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	target, err := req.Target()
	if err != nil {
		return nil, err
	}

	if target.IsProperty() {
		property, err := s.propertyRepo.FindByID(target.PropertyID())
		if err != nil {
			if errors.Is(err, repositories.ErrPropertyNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.StorageError(err)
		}
		if owner, err := s.agentRepo.FindByID(property.AgentID); err == nil && owner.UserID == userID {
			return nil, apperrors.ErrSelfReview
		}
	} else {
		agent, err := s.agentRepo.FindByID(target.AgentID())
		if err != nil {
			if errors.Is(err, repositories.ErrAgentNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.StorageError(err)
		}
		if agent.UserID == userID {
			return nil, apperrors.ErrSelfReview
		}
	}

	propertyID, agentID := target.Columns()
	review := &models.Review{
		UserID:     userID,
		PropertyID: propertyID,
		AgentID:    agentID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Status:     models.ReviewStatusPending,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, apperrors.StorageError(err)
	}

	created, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "review created", "review_id", review.ID, "user_id", userID)
	resp := dto.ToReviewResponse(created)
	return &resp, nil
}

// Update lets the author revise rating and comment. An edited review goes
// back to pending so it passes moderation again.
func (s *reviewService) Update(ctx context.Context, viewer Viewer, id string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}
	if !viewer.IsAdmin() && review.UserID != viewer.UserID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	wasApproved := review.Status == models.ReviewStatusApproved
	review.Rating = req.Rating
	review.Comment = req.Comment
	review.Status = models.ReviewStatusPending

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, apperrors.StorageError(err)
	}

	if wasApproved && review.AgentID != nil {
		s.recalcRating(ctx, *review.AgentID)
	}

	resp := dto.ToReviewResponse(review)
	return &resp, nil
}

// Delete removes a review. Authors may delete their own; admins any.
func (s *reviewService) Delete(ctx context.Context, viewer Viewer, id string) error {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.StorageError(err)
	}
	if !viewer.IsAdmin() && review.UserID != viewer.UserID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.reviewRepo.Delete(id); err != nil {
		return apperrors.StorageError(err)
	}

	if review.AgentID != nil {
		s.recalcRating(ctx, *review.AgentID)
	}
	return nil
}

func (s *reviewService) React(ctx context.Context, id string, like bool) error {
	column := "dislikes"
	if like {
		column = "likes"
	}
	if err := s.reviewRepo.IncrementReaction(id, column); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.StorageError(err)
	}
	return nil
}

// SetStatus moderates a review. Approving or rejecting an agent review
// refreshes the agent's cached rating.
func (s *reviewService) SetStatus(ctx context.Context, id string, status models.ReviewStatus) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.SetStatus(id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	if review.AgentID != nil {
		s.recalcRating(ctx, *review.AgentID)
	}

	logger.CtxInfo(ctx, "review status changed", "review_id", id, "status", status)
	resp := dto.ToReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) recalcRating(ctx context.Context, agentID string) {
	if err := s.agentRepo.RecalculateRating(agentID); err != nil {
		logger.CtxWarn(ctx, "agent rating refresh failed", "agent_id", agentID, "error", err)
	}
}
