package services

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"estatehub_backend/internal/email"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

// agentPageSize is the default listing limit for the agent directory.
const agentPageSize = 20

type AgentService interface {
	List(ctx context.Context, viewer Viewer, filter dto.AgentFilter) (*dto.ListResult[dto.AgentResponse], error)
	Get(ctx context.Context, id string) (*dto.AgentResponse, error)
	CreateProfile(ctx context.Context, userID string, req *dto.CreateAgentProfileRequest) (*dto.AgentResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateAgentProfileRequest) (*dto.AgentResponse, error)
	SetVerification(ctx context.Context, id string, status models.VerificationStatus) (*dto.AgentResponse, error)
}

type agentService struct {
	agentRepo repositories.AgentRepository
	userRepo  repositories.UserRepository
	mail      *email.Dispatcher
}

func NewAgentService(
	agentRepo repositories.AgentRepository,
	userRepo repositories.UserRepository,
	mail *email.Dispatcher,
) AgentService {
	return &agentService{agentRepo: agentRepo, userRepo: userRepo, mail: mail}
}

// List searches the public agent directory. Only admins may filter by
// verification status; everyone else sees approved agents only.
func (s *agentService) List(ctx context.Context, viewer Viewer, filter dto.AgentFilter) (*dto.ListResult[dto.AgentResponse], error) {
	b := query.NewBuilder().
		Search(filter.SearchTerm(), "users.first_name", "users.last_name", "users.email", "agent_profiles.agency_name").
		ILike("agent_profiles.city", filter.City).
		Equals("agent_profiles.state", filter.State).
		MinNumber("minRating", "agent_profiles.rating", filter.MinRating).
		MinInt("minExperience", "agent_profiles.years_experience", filter.MinExperience).
		Period("agent_profiles.created_at", filter.Period)

	if !query.IsAbsent(filter.Specialty) {
		b.Where("? = ANY(agent_profiles.specialties)", filter.Specialty)
	}

	if viewer.IsAdmin() {
		b.Enum("agent_profiles.verification", filter.Verification, models.ValidVerificationStatuses)
	} else {
		b.Where("agent_profiles.verification = ?", string(models.VerificationApproved))
	}

	pred, err := b.Build()
	if err != nil {
		var be *query.BuildError
		if errors.As(err, &be) {
			return nil, apperrors.ValidationError(be.Fields)
		}
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, agentPageSize)
	order := query.Order(filter.SortBy, repositories.AgentSortFields, "newest")

	items, total, err := s.agentRepo.Search(pred, order, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.AgentResponse]{
		Items: dto.ToAgentResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

func (s *agentService) Get(ctx context.Context, id string) (*dto.AgentResponse, error) {
	agent, err := s.agentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}
	resp := dto.ToAgentResponse(agent)
	return &resp, nil
}

// CreateProfile is the second agent signup phase. The profile starts in
// pending verification and an admin has to approve it before listings can
// be published.
func (s *agentService) CreateProfile(ctx context.Context, userID string, req *dto.CreateAgentProfileRequest) (*dto.AgentResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	if user.Role != models.UserRoleAgent {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile := &models.AgentProfile{
		UserID:             userID,
		RegistrationNumber: req.RegistrationNumber,
		Verification:       models.VerificationPending,
		AgencyName:         req.AgencyName,
		Bio:                req.Bio,
		City:               req.City,
		State:              req.State,
		Specialties:        pq.StringArray(req.Specialties),
		YearsExperience:    req.YearsExperience,
		CommissionRate:     req.CommissionRate,
		BankName:           req.BankName,
		BankAccount:        req.BankAccount,
	}

	if err := s.agentRepo.Create(profile); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAgentAlreadyExists):
			return nil, apperrors.ErrAlreadyExists(err)
		case errors.Is(err, repositories.ErrRegistrationNumberTaken):
			return nil, apperrors.ErrRegistrationNumberTaken
		}
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "agent profile created", "agent_id", profile.ID, "user_id", userID)
	return s.Get(ctx, profile.ID)
}

func (s *agentService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateAgentProfileRequest) (*dto.AgentResponse, error) {
	profile, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	if req.AgencyName != nil {
		profile.AgencyName = *req.AgencyName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.State != nil {
		profile.State = *req.State
	}
	if req.Specialties != nil {
		profile.Specialties = pq.StringArray(req.Specialties)
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.CommissionRate != nil {
		profile.CommissionRate = *req.CommissionRate
	}

	if err := s.agentRepo.Update(profile); err != nil {
		return nil, apperrors.StorageError(err)
	}
	return s.Get(ctx, profile.ID)
}

// SetVerification is the admin moderation path. Approving an already
// approved agent is a no-op, not an error, so retried requests stay safe.
func (s *agentService) SetVerification(ctx context.Context, id string, status models.VerificationStatus) (*dto.AgentResponse, error) {
	agent, err := s.agentRepo.SetVerification(id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	switch status {
	case models.VerificationApproved:
		s.mail.Dispatch(
			[]string{agent.User.Email},
			"Your EstateHub agent account is approved",
			email.TemplateAgentApproved,
			email.TemplateData{"Name": agent.User.FirstName, "Agency": agent.AgencyName},
		)
	case models.VerificationRejected:
		s.mail.Dispatch(
			[]string{agent.User.Email},
			"Your EstateHub agent application",
			email.TemplateAgentRejected,
			email.TemplateData{"Name": agent.User.FirstName},
		)
	}

	logger.CtxInfo(ctx, "agent verification changed", "agent_id", id, "status", status)
	resp := dto.ToAgentResponse(agent)
	return &resp, nil
}
