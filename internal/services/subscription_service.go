package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

// paymentPageSize is the default listing limit for payment history views.
const paymentPageSize = 50

type SubscriptionService interface {
	ListPlans(ctx context.Context) ([]dto.PlanResponse, error)
	Subscribe(ctx context.Context, userID string, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error)
	Current(ctx context.Context, userID string) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, userID string) error
	Payments(ctx context.Context, userID string, filter dto.PaymentFilter) (*dto.ListResult[dto.PaymentResponse], error)
	ListAllPayments(ctx context.Context, filter dto.PaymentFilter) (*dto.ListResult[dto.PaymentResponse], error)
}

type subscriptionService struct {
	subRepo   repositories.SubscriptionRepository
	agentRepo repositories.AgentRepository
}

func NewSubscriptionService(
	subRepo repositories.SubscriptionRepository,
	agentRepo repositories.AgentRepository,
) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, agentRepo: agentRepo}
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := s.subRepo.ListActivePlans()
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return dto.ToPlanResponses(plans), nil
}

// Subscribe puts the agent on a plan: records the payment, opens the
// subscription window and raises the listing limit to the plan's.
func (s *subscriptionService) Subscribe(ctx context.Context, userID string, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	agent, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrAgentNotVerified
		}
		return nil, apperrors.StorageError(err)
	}

	plan, err := s.subRepo.FindPlanByID(req.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}
	if plan.Price <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	if existing, err := s.subRepo.FindActiveByAgent(agent.ID); err == nil {
		return nil, apperrors.ErrConflict(nil, "subscription",
			"an active subscription already exists until "+existing.EndDate.Format(time.RFC3339))
	} else if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.StorageError(err)
	}

	now := time.Now()
	sub := &models.AgentSubscription{
		AgentID:   agent.ID,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		AutoRenew: req.AutoRenew,
	}
	if err := s.subRepo.CreateSubscription(sub); err != nil {
		return nil, apperrors.StorageError(err)
	}

	payment := &models.Payment{
		AgentID:        agent.ID,
		SubscriptionID: &sub.ID,
		Amount:         plan.Price,
		Method:         req.Method,
		Status:         models.PaymentStatusPaid,
		Reference:      uuid.NewString(),
	}
	if err := s.subRepo.CreatePayment(payment); err != nil {
		return nil, apperrors.StorageError(err)
	}

	err = s.agentRepo.UpdateFields(agent.ID, map[string]interface{}{
		"listing_limit": plan.ListingLimit,
		"plan":          plan.Name,
	})
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	sub.Plan = *plan
	logger.CtxInfo(ctx, "agent subscribed", "agent_id", agent.ID, "plan", plan.Name)
	resp := dto.ToSubscriptionResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) Current(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	agent, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	sub, err := s.subRepo.FindActiveByAgent(agent.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	resp := dto.ToSubscriptionResponse(sub)
	return &resp, nil
}

// Cancel ends the active subscription. Cancelling twice is a conflict.
func (s *subscriptionService) Cancel(ctx context.Context, userID string) error {
	agent, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	sub, err := s.subRepo.FindActiveByAgent(agent.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.ErrSubscriptionCancelled
		}
		return apperrors.StorageError(err)
	}

	if err := s.subRepo.CancelSubscription(sub.ID); err != nil {
		return apperrors.StorageError(err)
	}
	logger.CtxInfo(ctx, "subscription cancelled", "agent_id", agent.ID, "subscription_id", sub.ID)
	return nil
}

func (s *subscriptionService) Payments(ctx context.Context, userID string, filter dto.PaymentFilter) (*dto.ListResult[dto.PaymentResponse], error) {
	agent, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	pred, err := query.NewBuilder().
		Where("agent_id = ?", agent.ID).
		Enum("status", filter.Status, models.ValidPaymentStatuses).
		Period("created_at", filter.Period).
		Build()
	if err != nil {
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, paymentPageSize)
	items, total, err := s.subRepo.ListPayments(pred, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.PaymentResponse]{
		Items: dto.ToPaymentResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

// ListAllPayments is the moderation view over every agent's payments.
func (s *subscriptionService) ListAllPayments(ctx context.Context, filter dto.PaymentFilter) (*dto.ListResult[dto.PaymentResponse], error) {
	pred, err := query.NewBuilder().
		Equals("agent_id", filter.AgentID).
		Enum("status", filter.Status, models.ValidPaymentStatuses).
		Period("created_at", filter.Period).
		Build()
	if err != nil {
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, paymentPageSize)
	items, total, err := s.subRepo.ListPayments(pred, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.PaymentResponse]{
		Items: dto.ToPaymentResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}
