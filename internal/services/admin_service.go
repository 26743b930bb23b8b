package services

import (
	"context"
	"errors"

	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	PendingProperties int64 `json:"pendingProperties"`
	ActiveProperties  int64 `json:"activeProperties"`
	SoldProperties    int64 `json:"soldProperties"`
	PendingAgents     int64 `json:"pendingAgents"`
	ApprovedAgents    int64 `json:"approvedAgents"`
	PendingReviews    int64 `json:"pendingReviews"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	SetUserStatus(ctx context.Context, userID string, status models.UserStatus) (*dto.UserResponse, error)
}

type adminService struct {
	userRepo     repositories.UserRepository
	propertyRepo repositories.PropertyRepository
	agentRepo    repositories.AgentRepository
	reviewRepo   repositories.ReviewRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	propertyRepo repositories.PropertyRepository,
	agentRepo repositories.AgentRepository,
	reviewRepo repositories.ReviewRepository,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		count func() (int64, error)
	}{
		{&stats.PendingProperties, func() (int64, error) { return s.propertyRepo.CountByStatus(models.PropertyStatusPending) }},
		{&stats.ActiveProperties, func() (int64, error) { return s.propertyRepo.CountByStatus(models.PropertyStatusActive) }},
		{&stats.SoldProperties, func() (int64, error) { return s.propertyRepo.CountByStatus(models.PropertyStatusSold) }},
		{&stats.PendingAgents, func() (int64, error) { return s.agentRepo.CountByVerification(models.VerificationPending) }},
		{&stats.ApprovedAgents, func() (int64, error) { return s.agentRepo.CountByVerification(models.VerificationApproved) }},
		{&stats.PendingReviews, func() (int64, error) { return s.reviewRepo.CountByStatus(models.ReviewStatusPending) }},
	}

	for _, c := range counts {
		v, err := c.count()
		if err != nil {
			return nil, apperrors.StorageError(err)
		}
		*c.dest = v
	}
	return stats, nil
}

// SetUserStatus suspends or reinstates an account. Suspended users cannot
// log in and their refresh tokens are revoked.
func (s *adminService) SetUserStatus(ctx context.Context, userID string, status models.UserStatus) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}
	if user.Role == models.UserRoleAdmin {
		return nil, apperrors.ErrInvalidOperation("user", "admin accounts cannot be suspended")
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"status": status}); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if status == models.UserStatusSuspended {
		if err := s.userRepo.DeleteRefreshTokensForUser(userID); err != nil {
			return nil, apperrors.StorageError(err)
		}
	}

	user.Status = status
	logger.CtxInfo(ctx, "user status changed", "user_id", userID, "status", status)
	resp := dto.ToUserResponse(user)
	return &resp, nil
}
