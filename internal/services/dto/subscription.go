package dto

import "estatehub_backend/internal/models"

type SubscribeRequest struct {
	PlanID    string `json:"planId" validate:"required"`
	Method    string `json:"method" validate:"required,oneof=card transfer"`
	AutoRenew bool   `json:"autoRenew"`
}

type PaymentFilter struct {
	AgentID string `form:"agentId"`
	Status  string `form:"status"`
	Period  string `form:"period"`
	Page    string `form:"page"`
	Limit   string `form:"limit"`
}

type PlanResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"durationDays"`
	ListingLimit int     `json:"listingLimit"`
	Description  string  `json:"description"`
}

func ToPlanResponse(p *models.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		ListingLimit: p.ListingLimit,
		Description:  p.Description,
	}
}

func ToPlanResponses(plans []models.SubscriptionPlan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, ToPlanResponse(&plans[i]))
	}
	return out
}

type SubscriptionResponse struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	AutoRenew bool         `json:"autoRenew"`
	Plan      PlanResponse `json:"plan"`
}

func ToSubscriptionResponse(s *models.AgentSubscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		Status:    string(s.Status),
		StartDate: isoTime(s.StartDate),
		EndDate:   isoTime(s.EndDate),
		AutoRenew: s.AutoRenew,
		Plan:      ToPlanResponse(&s.Plan),
	}
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
	CreatedAt string  `json:"createdAt"`
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		Method:    p.Method,
		Status:    string(p.Status),
		Reference: p.Reference,
		CreatedAt: isoTime(p.CreatedAt),
	}
}

func ToPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}
