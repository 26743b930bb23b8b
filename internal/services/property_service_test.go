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
	"estatehub_backend/pkg/apperrors"
)

type fakePropertyRepo struct {
	properties    map[string]*models.Property
	activeByAgent int64

	lastPred  query.Predicate
	lastOrder string
	lastPage  query.Page
	searched  []models.Property
	total     int64
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[string]*models.Property)}
}

func (f *fakePropertyRepo) Create(p *models.Property) error {
	if p.ID == "" {
		p.ID = "prop-1"
	}
	f.properties[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) FindByID(id string) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, repositories.ErrPropertyNotFound
	}
	return p, nil
}

func (f *fakePropertyRepo) Update(p *models.Property) error {
	f.properties[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) UpdateFields(id string, fields map[string]interface{}) error {
	p, ok := f.properties[id]
	if !ok {
		return repositories.ErrPropertyNotFound
	}
	if status, ok := fields["status"]; ok {
		p.Status = status.(models.PropertyStatus)
	}
	return nil
}

func (f *fakePropertyRepo) Delete(id string) error {
	delete(f.properties, id)
	return nil
}

func (f *fakePropertyRepo) Search(pred query.Predicate, order string, pg query.Page) ([]models.Property, int64, error) {
	f.lastPred = pred
	f.lastOrder = order
	f.lastPage = pg
	return f.searched, f.total, nil
}

func (f *fakePropertyRepo) FindByAgent(agentID string, pg query.Page) ([]models.Property, int64, error) {
	return f.searched, f.total, nil
}

func (f *fakePropertyRepo) CountActiveByAgent(agentID string) (int64, error) {
	return f.activeByAgent, nil
}

func (f *fakePropertyRepo) CountByStatus(status models.PropertyStatus) (int64, error) {
	return 0, nil
}

func (f *fakePropertyRepo) IncrementViews(id string) error { return nil }

type fakeAgentRepo struct {
	byUser       map[string]*models.AgentProfile
	byID         map[string]*models.AgentProfile
	recalculated []string
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{
		byUser: make(map[string]*models.AgentProfile),
		byID:   make(map[string]*models.AgentProfile),
	}
}

func (f *fakeAgentRepo) add(agent *models.AgentProfile) {
	f.byUser[agent.UserID] = agent
	f.byID[agent.ID] = agent
}

func (f *fakeAgentRepo) Create(p *models.AgentProfile) error {
	if _, ok := f.byUser[p.UserID]; ok {
		return repositories.ErrAgentAlreadyExists
	}
	if p.ID == "" {
		p.ID = "agent-1"
	}
	f.add(p)
	return nil
}

func (f *fakeAgentRepo) FindByID(id string) (*models.AgentProfile, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrAgentNotFound
	}
	return a, nil
}

func (f *fakeAgentRepo) FindByUserID(userID string) (*models.AgentProfile, error) {
	a, ok := f.byUser[userID]
	if !ok {
		return nil, repositories.ErrAgentNotFound
	}
	return a, nil
}

func (f *fakeAgentRepo) Update(p *models.AgentProfile) error { return nil }

func (f *fakeAgentRepo) UpdateFields(id string, fields map[string]interface{}) error { return nil }

func (f *fakeAgentRepo) Search(pred query.Predicate, order string, pg query.Page) ([]models.AgentProfile, int64, error) {
	return nil, 0, nil
}

func (f *fakeAgentRepo) SetVerification(id string, status models.VerificationStatus) (*models.AgentProfile, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrAgentNotFound
	}
	a.Verification = status
	return a, nil
}

func (f *fakeAgentRepo) RecalculateRating(id string) error {
	f.recalculated = append(f.recalculated, id)
	return nil
}

func (f *fakeAgentRepo) CountByVerification(status models.VerificationStatus) (int64, error) {
	return 0, nil
}

func approvedAgent(id, userID string, limit int) *models.AgentProfile {
	a := &models.AgentProfile{
		UserID:       userID,
		Verification: models.VerificationApproved,
		ListingLimit: limit,
	}
	a.ID = id
	return a
}

func TestPropertyListForcesActiveStatusForVisitors(t *testing.T) {
	propRepo := newFakePropertyRepo()
	svc := NewPropertyService(propRepo, newFakeAgentRepo(), nil)

	_, err := svc.List(context.Background(), Viewer{}, dto.PropertyFilter{Status: "pending"})
	require.NoError(t, err)

	conds := propRepo.lastPred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "status = ?", conds[0].Expr)
	assert.Equal(t, []any{"active"}, conds[0].Args)
}

func TestPropertyListDefaultsToNewestOrder(t *testing.T) {
	propRepo := newFakePropertyRepo()
	svc := NewPropertyService(propRepo, newFakeAgentRepo(), nil)

	_, err := svc.List(context.Background(), Viewer{}, dto.PropertyFilter{})
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", propRepo.lastOrder)
	assert.Equal(t, 12, propRepo.lastPage.Limit)

	_, err = svc.List(context.Background(), Viewer{}, dto.PropertyFilter{SortBy: "nonsense"})
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", propRepo.lastOrder)
}

func TestPropertyListAdminMayFilterStatus(t *testing.T) {
	propRepo := newFakePropertyRepo()
	svc := NewPropertyService(propRepo, newFakeAgentRepo(), nil)

	admin := Viewer{UserID: "u1", Role: models.UserRoleAdmin}
	_, err := svc.List(context.Background(), admin, dto.PropertyFilter{Status: "pending"})
	require.NoError(t, err)

	conds := propRepo.lastPred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, []any{"pending"}, conds[0].Args)
}

func TestPropertyListMalformedPriceIsValidationError(t *testing.T) {
	svc := NewPropertyService(newFakePropertyRepo(), newFakeAgentRepo(), nil)

	_, err := svc.List(context.Background(), Viewer{}, dto.PropertyFilter{PriceMin: "abc"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestPropertyListSentinelValuesAreIgnored(t *testing.T) {
	propRepo := newFakePropertyRepo()
	svc := NewPropertyService(propRepo, newFakeAgentRepo(), nil)

	admin := Viewer{UserID: "u1", Role: models.UserRoleAdmin}
	_, err := svc.List(context.Background(), admin, dto.PropertyFilter{
		City:         "all",
		PropertyType: "undefined",
		Status:       "",
	})
	require.NoError(t, err)
	assert.Empty(t, propRepo.lastPred.Conds())
}

func TestPropertyListPagination(t *testing.T) {
	propRepo := newFakePropertyRepo()
	propRepo.total = 25
	svc := NewPropertyService(propRepo, newFakeAgentRepo(), nil)

	res, err := svc.List(context.Background(), Viewer{}, dto.PropertyFilter{Page: "2", Limit: "10"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, int64(25), res.Total)
	assert.Equal(t, 10, propRepo.lastPage.Offset)
}

func TestPropertyCreateRequiresApprovedAgent(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	pending := approvedAgent("agent-1", "user-1", 25)
	pending.Verification = models.VerificationPending
	agentRepo.add(pending)

	svc := NewPropertyService(newFakePropertyRepo(), agentRepo, nil)

	_, err := svc.Create(context.Background(), "user-1", &dto.CreatePropertyRequest{
		Title: "Sunny house", Price: 100000, Address: "1 Main St",
		City: "Austin", State: "TX", Type: "house",
	})
	assert.ErrorIs(t, err, apperrors.ErrAgentNotVerified)
}

func TestPropertyCreateEnforcesListingLimit(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "user-1", 2))

	propRepo := newFakePropertyRepo()
	propRepo.activeByAgent = 2

	svc := NewPropertyService(propRepo, agentRepo, nil)

	_, err := svc.Create(context.Background(), "user-1", &dto.CreatePropertyRequest{
		Title: "Sunny house", Price: 100000, Address: "1 Main St",
		City: "Austin", State: "TX", Type: "house",
	})
	assert.ErrorIs(t, err, apperrors.ErrListingLimitReached)
}

func TestPropertyCreateStartsPending(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "user-1", 25))

	propRepo := newFakePropertyRepo()
	svc := NewPropertyService(propRepo, agentRepo, nil)

	resp, err := svc.Create(context.Background(), "user-1", &dto.CreatePropertyRequest{
		Title: "Sunny house", Price: 100000, Address: "1 Main St",
		City: "Austin", State: "TX", Type: "house",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.NotNil(t, resp.Images)
	assert.NotNil(t, resp.Features)
}

func TestPropertyUpdateRejectsNonOwner(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "owner", 25))
	agentRepo.add(approvedAgent("agent-2", "intruder", 25))

	propRepo := newFakePropertyRepo()
	property := &models.Property{AgentID: "agent-1", Status: models.PropertyStatusActive}
	property.ID = "prop-1"
	propRepo.properties["prop-1"] = property

	svc := NewPropertyService(propRepo, agentRepo, nil)

	title := "New title"
	_, err := svc.Update(context.Background(), Viewer{UserID: "intruder", Role: models.UserRoleAgent},
		"prop-1", &dto.UpdatePropertyRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotPropertyOwner)
}

func TestPropertyMarkSoldRequiresActive(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "owner", 25))

	propRepo := newFakePropertyRepo()
	property := &models.Property{AgentID: "agent-1", Status: models.PropertyStatusPending}
	property.ID = "prop-1"
	propRepo.properties["prop-1"] = property

	svc := NewPropertyService(propRepo, agentRepo, nil)

	_, err := svc.MarkSold(context.Background(), Viewer{UserID: "owner", Role: models.UserRoleAgent}, "prop-1")
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotActive)
}
