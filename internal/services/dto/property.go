package dto

import (
	"encoding/json"

	"gorm.io/datatypes"

	"estatehub_backend/internal/models"
)

// PropertyFilter carries the raw, string-typed query parameters of the
// property listing endpoints. Everything is optional; validation happens in
// the filter builder.
type PropertyFilter struct {
	Search       string `form:"search"`
	Q            string `form:"q"`
	PriceMin     string `form:"priceMin"`
	PriceMax     string `form:"priceMax"`
	Bedrooms     string `form:"bedrooms"`
	Bathrooms    string `form:"bathrooms"`
	PropertyType string `form:"propertyType"`
	City         string `form:"city"`
	State        string `form:"state"`
	Status       string `form:"status"`
	Period       string `form:"period"`
	SortBy       string `form:"sortBy"`
	Page         string `form:"page"`
	Limit        string `form:"limit"`
}

// SearchTerm merges the two accepted spellings of the free-text parameter.
func (f PropertyFilter) SearchTerm() string {
	if f.Search != "" {
		return f.Search
	}
	return f.Q
}

type CreatePropertyRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	ZipCode     string   `json:"zipCode"`
	Bedrooms    int      `json:"bedrooms" validate:"min=0"`
	Bathrooms   int      `json:"bathrooms" validate:"min=0"`
	AreaSqFt    float64  `json:"areaSqFt" validate:"min=0"`
	Type        string   `json:"type" validate:"required,propertytype"`
	Features    []string `json:"features"`
}

type UpdatePropertyRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	ZipCode     *string  `json:"zipCode"`
	Bedrooms    *int     `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms   *int     `json:"bathrooms" validate:"omitempty,min=0"`
	AreaSqFt    *float64 `json:"areaSqFt" validate:"omitempty,min=0"`
	Features    []string `json:"features"`
}

// PropertyResponse is the wire contract for one property. Every promised key
// is always present with its exact declared type.
type PropertyResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	ZipCode     string        `json:"zipCode"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	AreaSqFt    float64       `json:"areaSqFt"`
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	Images      []string      `json:"images"`
	Features    []string      `json:"features"`
	Views       int           `json:"views"`
	Agent       *AgentSummary `json:"agent,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// AgentSummary is the bounded agent view embedded in property responses.
type AgentSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	AgencyName      string  `json:"agencyName"`
	Rating          float64 `json:"rating"`
	YearsExperience int     `json:"yearsExperience"`
}

// ToPropertyResponse projects a property record with its preloaded agent into
// the wire shape. JSON columns decode into plain slices; nil columns become
// empty slices so clients never see missing keys.
func ToPropertyResponse(p *models.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.ZipCode,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		AreaSqFt:    p.AreaSqFt,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Images:      decodeStringList(p.Images),
		Features:    decodeStringList(p.Features),
		Views:       p.Views,
		CreatedAt:   isoTime(p.CreatedAt),
		UpdatedAt:   isoTime(p.UpdatedAt),
	}

	if p.Agent.ID != "" {
		resp.Agent = &AgentSummary{
			ID:              p.Agent.ID,
			Name:            fullName(p.Agent.User.FirstName, p.Agent.User.LastName),
			Email:           p.Agent.User.Email,
			Phone:           p.Agent.User.Phone,
			AgencyName:      p.Agent.AgencyName,
			Rating:          p.Agent.Rating,
			YearsExperience: p.Agent.YearsExperience,
		}
	}

	return resp
}

// ToPropertyResponses projects a fetched page of records.
func ToPropertyResponses(properties []models.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, ToPropertyResponse(&properties[i]))
	}
	return out
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
