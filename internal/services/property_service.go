package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"estatehub_backend/internal/cache"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

// propertyPageSize is the default listing limit for property endpoints.
const propertyPageSize = 12

// Viewer describes who is asking. Zero value is an anonymous visitor.
type Viewer struct {
	UserID string
	Role   models.UserRole
}

func (v Viewer) IsAdmin() bool { return v.Role == models.UserRoleAdmin }

type PropertyService interface {
	List(ctx context.Context, viewer Viewer, filter dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error)
	Get(ctx context.Context, id string, countView bool) (*dto.PropertyResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error)
	Update(ctx context.Context, viewer Viewer, id string, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error)
	Delete(ctx context.Context, viewer Viewer, id string) error
	MarkSold(ctx context.Context, viewer Viewer, id string) (*dto.PropertyResponse, error)
	ListByAgent(ctx context.Context, viewer Viewer, agentID string, filter dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error)
	ListMine(ctx context.Context, userID string, filter dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error)
	SetStatus(ctx context.Context, id string, status models.PropertyStatus) (*dto.PropertyResponse, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	agentRepo    repositories.AgentRepository
	cache        *cache.Cache
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	agentRepo repositories.AgentRepository,
	cache *cache.Cache,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		agentRepo:    agentRepo,
		cache:        cache,
	}
}

// List builds the predicate from raw filter input and runs the count/fetch
// pair. Non-admin viewers only ever see active listings regardless of the
// status parameter they send.
func (s *propertyService) List(ctx context.Context, viewer Viewer, filter dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error) {
	b := query.NewBuilder().
		Search(filter.SearchTerm(), "title", "description", "address", "city").
		Enum("type", filter.PropertyType, models.ValidPropertyTypes).
		ILike("city", filter.City).
		Equals("state", filter.State).
		MinNumber("priceMin", "price", filter.PriceMin).
		MaxNumber("priceMax", "price", filter.PriceMax).
		MinInt("bedrooms", "bedrooms", filter.Bedrooms).
		MinInt("bathrooms", "bathrooms", filter.Bathrooms).
		Period("created_at", filter.Period)

	if viewer.IsAdmin() {
		b.Enum("status", filter.Status, models.ValidPropertyStatuses)
	} else {
		b.Where("status = ?", string(models.PropertyStatusActive))
	}

	pred, err := b.Build()
	if err != nil {
		var be *query.BuildError
		if errors.As(err, &be) {
			return nil, apperrors.ValidationError(be.Fields)
		}
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, propertyPageSize)
	order := query.Order(filter.SortBy, repositories.PropertySortFields, "newest")

	items, total, err := s.propertyRepo.Search(pred, order, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.PropertyResponse]{
		Items: dto.ToPropertyResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

func (s *propertyService) Get(ctx context.Context, id string, countView bool) (*dto.PropertyResponse, error) {
	cacheKey := "property:" + id

	var cached dto.PropertyResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		if countView {
			s.countView(ctx, id)
		}
		return &cached, nil
	}

	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	resp := dto.ToPropertyResponse(property)
	s.cache.Set(ctx, cacheKey, resp)

	if countView {
		s.countView(ctx, id)
	}
	return &resp, nil
}

// countView is best effort; a failed counter never fails the read.
func (s *propertyService) countView(ctx context.Context, id string) {
	if err := s.propertyRepo.IncrementViews(id); err != nil {
		logger.CtxWarn(ctx, "view counter update failed", "property_id", id, "error", err)
	}
}

func (s *propertyService) Create(ctx context.Context, userID string, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	agent, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrAgentNotVerified
		}
		return nil, apperrors.StorageError(err)
	}
	if agent.Verification != models.VerificationApproved {
		return nil, apperrors.ErrAgentNotVerified
	}

	active, err := s.propertyRepo.CountActiveByAgent(agent.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	if active >= int64(agent.ListingLimit) {
		return nil, apperrors.ErrListingLimitReached
	}

	property := &models.Property{
		AgentID:     agent.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqFt:    req.AreaSqFt,
		Type:        models.PropertyType(req.Type),
		Status:      models.PropertyStatusPending,
		Images:      datatypes.JSON([]byte("[]")),
		Features:    encodeStringList(req.Features),
	}

	if err := s.propertyRepo.Create(property); err != nil {
		return nil, apperrors.StorageError(err)
	}

	created, err := s.propertyRepo.FindByID(property.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "property created", "property_id", property.ID, "agent_id", agent.ID)
	resp := dto.ToPropertyResponse(created)
	return &resp, nil
}

func (s *propertyService) Update(ctx context.Context, viewer Viewer, id string, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	property, err := s.authorized(viewer, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.State != nil {
		property.State = *req.State
	}
	if req.ZipCode != nil {
		property.ZipCode = *req.ZipCode
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqFt != nil {
		property.AreaSqFt = *req.AreaSqFt
	}
	if req.Features != nil {
		property.Features = encodeStringList(req.Features)
	}

	if err := s.propertyRepo.Update(property); err != nil {
		return nil, apperrors.StorageError(err)
	}
	s.cache.Invalidate(ctx, "property:"+id)

	resp := dto.ToPropertyResponse(property)
	return &resp, nil
}

func (s *propertyService) Delete(ctx context.Context, viewer Viewer, id string) error {
	if _, err := s.authorized(viewer, id); err != nil {
		return err
	}
	if err := s.propertyRepo.Delete(id); err != nil {
		return apperrors.StorageError(err)
	}
	s.cache.Invalidate(ctx, "property:"+id)
	logger.CtxInfo(ctx, "property deleted", "property_id", id)
	return nil
}

func (s *propertyService) MarkSold(ctx context.Context, viewer Viewer, id string) (*dto.PropertyResponse, error) {
	property, err := s.authorized(viewer, id)
	if err != nil {
		return nil, err
	}
	if property.Status != models.PropertyStatusActive {
		return nil, apperrors.ErrPropertyNotActive
	}
	return s.SetStatus(ctx, id, models.PropertyStatusSold)
}

// ListByAgent lists one agent's portfolio. The owning agent and admins see
// every status; everyone else sees active listings only.
func (s *propertyService) ListByAgent(ctx context.Context, viewer Viewer, agentID string, filter dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error) {
	b := query.NewBuilder().Where("agent_id = ?", agentID)
	if viewer.IsAdmin() || s.ownsAgentProfile(viewer.UserID, agentID) {
		b.Enum("status", filter.Status, models.ValidPropertyStatuses)
	} else {
		b.Where("status = ?", string(models.PropertyStatusActive))
	}

	pred, err := b.Build()
	if err != nil {
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, propertyPageSize)
	items, total, err := s.propertyRepo.Search(pred, "created_at DESC", pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return &dto.ListResult[dto.PropertyResponse]{
		Items: dto.ToPropertyResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

// ListMine resolves the caller's agent profile and returns the full
// portfolio regardless of status.
func (s *propertyService) ListMine(ctx context.Context, userID string, filter dto.PropertyFilter) (*dto.ListResult[dto.PropertyResponse], error) {
	agent, err := s.agentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAgentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	pg := query.ParsePage(filter.Page, filter.Limit, propertyPageSize)
	items, total, err := s.propertyRepo.FindByAgent(agent.ID, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return &dto.ListResult[dto.PropertyResponse]{
		Items: dto.ToPropertyResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

func (s *propertyService) ownsAgentProfile(userID, agentID string) bool {
	if userID == "" {
		return false
	}
	agent, err := s.agentRepo.FindByUserID(userID)
	return err == nil && agent.ID == agentID
}

// SetStatus is the moderation path; callers gate the admin role upstream.
func (s *propertyService) SetStatus(ctx context.Context, id string, status models.PropertyStatus) (*dto.PropertyResponse, error) {
	if err := s.propertyRepo.UpdateFields(id, map[string]interface{}{"status": status}); err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}
	s.cache.Invalidate(ctx, "property:"+id)

	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	logger.CtxInfo(ctx, "property status changed", "property_id", id, "status", status)
	resp := dto.ToPropertyResponse(property)
	return &resp, nil
}

// authorized loads the property and checks the viewer may modify it: the
// owning agent or an admin.
func (s *propertyService) authorized(viewer Viewer, id string) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	if viewer.IsAdmin() {
		return property, nil
	}

	agent, err := s.agentRepo.FindByUserID(viewer.UserID)
	if err != nil || agent.ID != property.AgentID {
		return nil, apperrors.ErrNotPropertyOwner
	}
	return property, nil
}

func encodeStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
