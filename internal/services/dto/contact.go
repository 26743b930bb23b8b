package dto

import "estatehub_backend/internal/models"

type ContactFilter struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	AgentID string `form:"agentId"`
	Period  string `form:"period"`
	SortBy  string `form:"sortBy"`
	Page    string `form:"page"`
	Limit   string `form:"limit"`
}

type CreateContactRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Message    string `json:"message" validate:"required,max=5000"`
	AgentID    string `json:"agentId"`
	PropertyID string `json:"propertyId"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=contacted qualified converted archived"`
}

type ContactResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Message    string  `json:"message"`
	Status     string  `json:"status"`
	AgentID    *string `json:"agentId"`
	PropertyID *string `json:"propertyId"`
	CreatedAt  string  `json:"createdAt"`
}

func ToContactResponse(c *models.Contact) ContactResponse {
	return ContactResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Message:    c.Message,
		Status:     string(c.Status),
		AgentID:    c.AgentID,
		PropertyID: c.PropertyID,
		CreatedAt:  isoTime(c.CreatedAt),
	}
}

func ToContactResponses(contacts []models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, ToContactResponse(&contacts[i]))
	}
	return out
}
