package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internal/models"
)

func TestSubscriptionRepository_ExpireOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriptionRepository(db)

	plan := &models.SubscriptionPlan{Name: "basic", Price: 29.99, DurationDays: 30, ListingLimit: 25, IsActive: true}
	require.NoError(t, db.Create(plan).Error)

	overdueAgent := uuid.NewString()
	currentAgent := uuid.NewString()
	now := time.Now()

	require.NoError(t, repo.CreateSubscription(&models.AgentSubscription{
		AgentID:   overdueAgent,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartDate: now.AddDate(0, -1, -1),
		EndDate:   now.AddDate(0, 0, -1),
	}))
	require.NoError(t, repo.CreateSubscription(&models.AgentSubscription{
		AgentID:   currentAgent,
		PlanID:    plan.ID,
		Status:    models.SubscriptionStatusActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
	}))

	expired, err := repo.ExpireOverdue()
	require.NoError(t, err)
	assert.EqualValues(t, 1, expired)

	_, err = repo.FindActiveByAgent(overdueAgent)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)

	sub, err := repo.FindActiveByAgent(currentAgent)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, plan.Name, sub.Plan.Name)

	// Nothing overdue on a second sweep.
	expired, err = repo.ExpireOverdue()
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestSubscriptionRepository_CancelMissing(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t))

	err := repo.CancelSubscription(uuid.NewString())
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
