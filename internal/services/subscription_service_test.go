package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
)

type fakeSubscriptionRepo struct {
	lastPred query.Predicate
	lastPage query.Page
}

func (f *fakeSubscriptionRepo) ListActivePlans() ([]models.SubscriptionPlan, error) { return nil, nil }

func (f *fakeSubscriptionRepo) FindPlanByID(id string) (*models.SubscriptionPlan, error) {
	return nil, repositories.ErrPlanNotFound
}

func (f *fakeSubscriptionRepo) CreateSubscription(sub *models.AgentSubscription) error { return nil }

func (f *fakeSubscriptionRepo) FindActiveByAgent(agentID string) (*models.AgentSubscription, error) {
	return nil, repositories.ErrSubscriptionNotFound
}

func (f *fakeSubscriptionRepo) CancelSubscription(id string) error { return nil }

func (f *fakeSubscriptionRepo) CreatePayment(payment *models.Payment) error { return nil }

func (f *fakeSubscriptionRepo) ListPayments(pred query.Predicate, pg query.Page) ([]models.Payment, int64, error) {
	f.lastPred = pred
	f.lastPage = pg
	return nil, 0, nil
}

func (f *fakeSubscriptionRepo) ExpireOverdue() (int64, error) { return 0, nil }

func TestListAllPaymentsIgnoresUnknownStatus(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{}
	svc := NewSubscriptionService(subRepo, newFakeAgentRepo())

	_, err := svc.ListAllPayments(context.Background(), dto.PaymentFilter{Status: "nonsense"})
	require.NoError(t, err)
	assert.Empty(t, subRepo.lastPred.Conds())

	_, err = svc.ListAllPayments(context.Background(), dto.PaymentFilter{Status: "paid"})
	require.NoError(t, err)

	conds := subRepo.lastPred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "status = ?", conds[0].Expr)
	assert.Equal(t, []any{"paid"}, conds[0].Args)
	assert.Equal(t, 50, subRepo.lastPage.Limit)
}
