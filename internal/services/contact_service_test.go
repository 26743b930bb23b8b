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

type fakeContactRepo struct {
	contacts map[string]*models.Contact

	lastPred  query.Predicate
	lastOrder string
	lastPage  query.Page
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[string]*models.Contact)}
}

func (f *fakeContactRepo) Create(c *models.Contact) error {
	if c.ID == "" {
		c.ID = "contact-1"
	}
	f.contacts[c.ID] = c
	return nil
}

func (f *fakeContactRepo) FindByID(id string) (*models.Contact, error) {
	c, ok := f.contacts[id]
	if !ok {
		return nil, repositories.ErrContactNotFound
	}
	return c, nil
}

func (f *fakeContactRepo) Search(pred query.Predicate, order string, pg query.Page) ([]models.Contact, int64, error) {
	f.lastPred = pred
	f.lastOrder = order
	f.lastPage = pg
	return nil, 0, nil
}

func (f *fakeContactRepo) UpdateStatus(id string, status models.ContactStatus) error {
	c, ok := f.contacts[id]
	if !ok {
		return repositories.ErrContactNotFound
	}
	c.Status = status
	return nil
}

func TestContactListIgnoresUnknownStatus(t *testing.T) {
	contactRepo := newFakeContactRepo()
	svc := NewContactService(contactRepo, newFakeAgentRepo(), newFakePropertyRepo(), nil)

	admin := Viewer{UserID: "u1", Role: models.UserRoleAdmin}
	_, err := svc.List(context.Background(), admin, dto.ContactFilter{Status: "nonsense"})
	require.NoError(t, err)
	assert.Empty(t, contactRepo.lastPred.Conds())

	_, err = svc.List(context.Background(), admin, dto.ContactFilter{Status: "new"})
	require.NoError(t, err)

	conds := contactRepo.lastPred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "status = ?", conds[0].Expr)
	assert.Equal(t, []any{"new"}, conds[0].Args)
}

func TestContactListDefaultSortAndLimit(t *testing.T) {
	contactRepo := newFakeContactRepo()
	svc := NewContactService(contactRepo, newFakeAgentRepo(), newFakePropertyRepo(), nil)

	admin := Viewer{UserID: "u1", Role: models.UserRoleAdmin}
	_, err := svc.List(context.Background(), admin, dto.ContactFilter{})
	require.NoError(t, err)

	assert.Equal(t, "created_at DESC", contactRepo.lastOrder)
	assert.Equal(t, 50, contactRepo.lastPage.Limit)
}
