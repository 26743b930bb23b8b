package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estatehub_backend/internal/models"
)

func TestToAgentResponseAggregatesPreloadedRows(t *testing.T) {
	profile := &models.AgentProfile{
		UserID: "user-1",
		Properties: []models.Property{
			{Status: models.PropertyStatusActive, Price: 100000},
			{Status: models.PropertyStatusSold, Price: 200000},
			{Status: models.PropertyStatusPending, Price: 999999},
		},
		Reviews: []models.Review{
			{Rating: 5, Status: models.ReviewStatusApproved},
			{Rating: 4, Status: models.ReviewStatusApproved},
		},
	}
	profile.ID = "agent-1"

	resp := ToAgentResponse(profile)

	assert.Equal(t, 1, resp.ActiveListings)
	assert.Equal(t, 1, resp.PropertiesSold)
	assert.Equal(t, 2, resp.TotalReviews)

	// Pending listings stay out of the average.
	assert.InDelta(t, 150000, resp.AveragePrice, 0.01)
}
