package dto

import "estatehub_backend/internal/models"

type AgentFilter struct {
	Search        string `form:"search"`
	Q             string `form:"q"`
	City          string `form:"city"`
	State         string `form:"state"`
	Specialty     string `form:"specialty"`
	MinRating     string `form:"minRating"`
	MinExperience string `form:"minExperience"`
	Verification  string `form:"verification"`
	Period        string `form:"period"`
	SortBy        string `form:"sortBy"`
	Page          string `form:"page"`
	Limit         string `form:"limit"`
}

func (f AgentFilter) SearchTerm() string {
	if f.Search != "" {
		return f.Search
	}
	return f.Q
}

// CreateAgentProfileRequest is the second signup phase: an already registered
// user with the agent role submits professional credentials.
type CreateAgentProfileRequest struct {
	RegistrationNumber string   `json:"registrationNumber" validate:"required,min=3,max=50"`
	AgencyName         string   `json:"agencyName" validate:"required,max=200"`
	Bio                string   `json:"bio" validate:"max=3000"`
	City               string   `json:"city" validate:"required"`
	State              string   `json:"state" validate:"required"`
	Specialties        []string `json:"specialties"`
	YearsExperience    int      `json:"yearsExperience" validate:"min=0,max=80"`
	CommissionRate     float64  `json:"commissionRate" validate:"min=0,max=100"`
	BankName           string   `json:"bankName"`
	BankAccount        string   `json:"bankAccount"`
}

type UpdateAgentProfileRequest struct {
	AgencyName      *string  `json:"agencyName" validate:"omitempty,max=200"`
	Bio             *string  `json:"bio" validate:"omitempty,max=3000"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	Specialties     []string `json:"specialties"`
	YearsExperience *int     `json:"yearsExperience" validate:"omitempty,min=0,max=80"`
	CommissionRate  *float64 `json:"commissionRate" validate:"omitempty,min=0,max=100"`
}

type AgentResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	AvatarURL          string   `json:"avatarUrl"`
	RegistrationNumber string   `json:"registrationNumber"`
	Verification       string   `json:"verification"`
	AgencyName         string   `json:"agencyName"`
	Bio                string   `json:"bio"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Specialties        []string `json:"specialties"`
	YearsExperience    int      `json:"yearsExperience"`
	CommissionRate     float64  `json:"commissionRate"`
	ListingLimit       int      `json:"listingLimit"`
	Plan               string   `json:"plan"`
	Rating             float64  `json:"rating"`
	TotalReviews       int      `json:"totalReviews"`
	ActiveListings     int      `json:"activeListings"`
	PropertiesSold     int      `json:"propertiesSold"`
	AveragePrice       float64  `json:"averagePrice"`
	CreatedAt          string   `json:"createdAt"`
}

// ToAgentResponse projects an agent profile with its preloaded user and the
// bounded property and review selects. The sold counter, average price and
// review count come from the preloaded rows rather than extra queries.
func ToAgentResponse(a *models.AgentProfile) AgentResponse {
	resp := AgentResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		Name:               fullName(a.User.FirstName, a.User.LastName),
		Email:              a.User.Email,
		Phone:              a.User.Phone,
		AvatarURL:          a.User.AvatarURL,
		RegistrationNumber: a.RegistrationNumber,
		Verification:       string(a.Verification),
		AgencyName:         a.AgencyName,
		Bio:                a.Bio,
		City:               a.City,
		State:              a.State,
		Specialties:        []string(a.Specialties),
		YearsExperience:    a.YearsExperience,
		CommissionRate:     a.CommissionRate,
		ListingLimit:       a.ListingLimit,
		Plan:               a.Plan,
		Rating:             a.Rating,
		TotalReviews:       len(a.Reviews),
		CreatedAt:          isoTime(a.CreatedAt),
	}
	if resp.Specialties == nil {
		resp.Specialties = []string{}
	}

	var priceSum float64
	var priced int
	for i := range a.Properties {
		switch a.Properties[i].Status {
		case models.PropertyStatusActive:
			resp.ActiveListings++
		case models.PropertyStatusSold:
			resp.PropertiesSold++
		}
		if a.Properties[i].Status == models.PropertyStatusActive || a.Properties[i].Status == models.PropertyStatusSold {
			priceSum += a.Properties[i].Price
			priced++
		}
	}
	if priced > 0 {
		resp.AveragePrice = priceSum / float64(priced)
	}

	return resp
}

func ToAgentResponses(agents []models.AgentProfile) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for i := range agents {
		out = append(out, ToAgentResponse(&agents[i]))
	}
	return out
}
