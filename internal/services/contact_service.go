package services

import (
	"context"
	"errors"

	"estatehub_backend/internal/email"
	"estatehub_backend/internal/logger"
	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

// contactPageSize is the default listing limit for the back-office contact
// views.
const contactPageSize = 50

type ContactService interface {
	Create(ctx context.Context, userID string, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	List(ctx context.Context, viewer Viewer, filter dto.ContactFilter) (*dto.ListResult[dto.ContactResponse], error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*dto.ContactResponse, error)
}

type contactService struct {
	contactRepo  repositories.ContactRepository
	agentRepo    repositories.AgentRepository
	propertyRepo repositories.PropertyRepository
	mail         *email.Dispatcher
}

func NewContactService(
	contactRepo repositories.ContactRepository,
	agentRepo repositories.AgentRepository,
	propertyRepo repositories.PropertyRepository,
	mail *email.Dispatcher,
) ContactService {
	return &contactService{
		contactRepo:  contactRepo,
		agentRepo:    agentRepo,
		propertyRepo: propertyRepo,
		mail:         mail,
	}
}

// Create records an inquiry. When the inquiry names a property, the owning
// agent is resolved from it; the agent gets a notification mail.
func (s *contactService) Create(ctx context.Context, userID string, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  models.ContactStatusNew,
	}
	if userID != "" {
		contact.UserID = &userID
	}

	var propertyTitle string
	if req.PropertyID != "" {
		property, err := s.propertyRepo.FindByID(req.PropertyID)
		if err != nil {
			if errors.Is(err, repositories.ErrPropertyNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.StorageError(err)
		}
		propertyTitle = property.Title
		contact.PropertyID = &property.ID
		contact.AgentID = &property.AgentID
	} else if req.AgentID != "" {
		if _, err := s.agentRepo.FindByID(req.AgentID); err != nil {
			if errors.Is(err, repositories.ErrAgentNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.StorageError(err)
		}
		id := req.AgentID
		contact.AgentID = &id
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, apperrors.StorageError(err)
	}

	if contact.AgentID != nil {
		if agent, err := s.agentRepo.FindByID(*contact.AgentID); err == nil {
			s.mail.Dispatch(
				[]string{agent.User.Email},
				"New inquiry on EstateHub",
				email.TemplateContactToAgent,
				email.TemplateData{
					"Name":     contact.Name,
					"Email":    contact.Email,
					"Phone":    contact.Phone,
					"Message":  contact.Message,
					"Property": propertyTitle,
				},
			)
		}
	}

	logger.CtxInfo(ctx, "contact created", "contact_id", contact.ID)
	resp := dto.ToContactResponse(contact)
	return &resp, nil
}

// List is for the back office: admins see everything, agents see inquiries
// addressed to them.
func (s *contactService) List(ctx context.Context, viewer Viewer, filter dto.ContactFilter) (*dto.ListResult[dto.ContactResponse], error) {
	b := query.NewBuilder().
		Search(filter.Search, "name", "email", "message").
		Period("created_at", filter.Period)

	b.Enum("status", filter.Status, models.ValidContactStatuses)

	if viewer.IsAdmin() {
		b.Equals("agent_id", filter.AgentID)
	} else {
		agent, err := s.agentRepo.FindByUserID(viewer.UserID)
		if err != nil {
			return nil, apperrors.ErrInsufficientPermissions
		}
		b.Where("agent_id = ?", agent.ID)
	}

	pred, err := b.Build()
	if err != nil {
		var be *query.BuildError
		if errors.As(err, &be) {
			return nil, apperrors.ValidationError(be.Fields)
		}
		return nil, err
	}

	pg := query.ParsePage(filter.Page, filter.Limit, contactPageSize)
	order := query.Order(filter.SortBy, repositories.ContactSortFields, "newest")

	items, total, err := s.contactRepo.Search(pred, order, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.ContactResponse]{
		Items: dto.ToContactResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}

// UpdateStatus moves a contact along the pipeline. Moves outside the allowed
// transitions are rejected.
func (s *contactService) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrContactNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.StorageError(err)
	}

	if !contact.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidStatus("contact",
			"cannot move contact from "+string(contact.Status)+" to "+string(status))
	}

	if err := s.contactRepo.UpdateStatus(id, status); err != nil {
		return nil, apperrors.StorageError(err)
	}
	contact.Status = status

	resp := dto.ToContactResponse(contact)
	return &resp, nil
}
