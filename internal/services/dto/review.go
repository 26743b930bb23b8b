package dto

import (
	"estatehub_backend/internal/models"
	"estatehub_backend/pkg/apperrors"
)

// ReviewTarget identifies what a review is about: exactly one of a property
// or an agent. The zero value is invalid; build one through NewReviewTarget
// so the exactly-one rule cannot be bypassed.
type ReviewTarget struct {
	propertyID string
	agentID    string
}

// NewReviewTarget rejects requests that name both targets or neither.
func NewReviewTarget(propertyID, agentID string) (ReviewTarget, error) {
	if (propertyID == "") == (agentID == "") {
		return ReviewTarget{}, apperrors.ErrReviewTargetMissing
	}
	return ReviewTarget{propertyID: propertyID, agentID: agentID}, nil
}

// IsProperty reports whether the target is a property.
func (t ReviewTarget) IsProperty() bool { return t.propertyID != "" }

// PropertyID returns the property id, or "" for agent targets.
func (t ReviewTarget) PropertyID() string { return t.propertyID }

// AgentID returns the agent profile id, or "" for property targets.
func (t ReviewTarget) AgentID() string { return t.agentID }

// Columns returns the nullable foreign key pair for persistence. Exactly one
// pointer is non-nil.
func (t ReviewTarget) Columns() (propertyID, agentID *string) {
	if t.propertyID != "" {
		id := t.propertyID
		return &id, nil
	}
	id := t.agentID
	return nil, &id
}

type ReviewFilter struct {
	PropertyID string `form:"propertyId"`
	AgentID    string `form:"agentId"`
	Rating     string `form:"rating"`
	Status     string `form:"status"`
	Period     string `form:"period"`
	SortBy     string `form:"sortBy"`
	Page       string `form:"page"`
	Limit      string `form:"limit"`
}

type CreateReviewRequest struct {
	PropertyID string `json:"propertyId"`
	AgentID    string `json:"agentId"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=2000"`
}

// Target builds the tagged variant from the raw request pair.
func (r CreateReviewRequest) Target() (ReviewTarget, error) {
	return NewReviewTarget(r.PropertyID, r.AgentID)
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID         string       `json:"id"`
	PropertyID *string      `json:"propertyId"`
	AgentID    *string      `json:"agentId"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	Status     string       `json:"status"`
	Likes      int          `json:"likes"`
	Dislikes   int          `json:"dislikes"`
	Author     UserSummary  `json:"author"`
	CreatedAt  string       `json:"createdAt"`
}

// UserSummary is the bounded author view embedded in review responses.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		AgentID:    r.AgentID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		Status:     string(r.Status),
		Likes:      r.Likes,
		Dislikes:   r.Dislikes,
		Author: UserSummary{
			ID:        r.User.ID,
			Name:      fullName(r.User.FirstName, r.User.LastName),
			AvatarURL: r.User.AvatarURL,
		},
		CreatedAt: isoTime(r.CreatedAt),
	}
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ToReviewResponse(&reviews[i]))
	}
	return out
}
