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

type fakeReviewRepo struct {
	reviews  map[string]*models.Review
	existing bool

	lastPred  query.Predicate
	lastOrder string
	lastPage  query.Page
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (f *fakeReviewRepo) Create(r *models.Review) error {
	if f.existing {
		return repositories.ErrReviewAlreadyExists
	}
	if r.ID == "" {
		r.ID = "rev-1"
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) FindByID(id string) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) Update(r *models.Review) error { return nil }

func (f *fakeReviewRepo) Delete(id string) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) Search(pred query.Predicate, order string, pg query.Page) ([]models.Review, int64, error) {
	f.lastPred = pred
	f.lastOrder = order
	f.lastPage = pg
	return nil, 0, nil
}

func (f *fakeReviewRepo) ExistsForTarget(userID string, propertyID, agentID *string) (bool, error) {
	return f.existing, nil
}

func (f *fakeReviewRepo) SetStatus(id string, status models.ReviewStatus) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	r.Status = status
	return r, nil
}

func (f *fakeReviewRepo) IncrementReaction(id, column string) error {
	r, ok := f.reviews[id]
	if !ok {
		return repositories.ErrReviewNotFound
	}
	if column == "likes" {
		r.Likes++
	} else {
		r.Dislikes++
	}
	return nil
}

func (f *fakeReviewRepo) CountByStatus(status models.ReviewStatus) (int64, error) { return 0, nil }

func TestReviewTargetExactlyOne(t *testing.T) {
	_, err := dto.NewReviewTarget("", "")
	assert.ErrorIs(t, err, apperrors.ErrReviewTargetMissing)

	_, err = dto.NewReviewTarget("prop-1", "agent-1")
	assert.ErrorIs(t, err, apperrors.ErrReviewTargetMissing)

	target, err := dto.NewReviewTarget("prop-1", "")
	require.NoError(t, err)
	assert.True(t, target.IsProperty())

	propertyID, agentID := target.Columns()
	require.NotNil(t, propertyID)
	assert.Nil(t, agentID)
	assert.Equal(t, "prop-1", *propertyID)
}

func TestReviewCreateRejectsSelfReviewOfOwnProperty(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "owner", 25))

	propRepo := newFakePropertyRepo()
	property := &models.Property{AgentID: "agent-1", Status: models.PropertyStatusActive}
	property.ID = "prop-1"
	propRepo.properties["prop-1"] = property

	svc := NewReviewService(newFakeReviewRepo(), propRepo, agentRepo)

	_, err := svc.Create(context.Background(), "owner", &dto.CreateReviewRequest{
		PropertyID: "prop-1", Rating: 5,
	})
	assert.ErrorIs(t, err, apperrors.ErrSelfReview)
}

func TestReviewCreateRejectsDuplicate(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "owner", 25))

	reviewRepo := newFakeReviewRepo()
	reviewRepo.existing = true

	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), agentRepo)

	_, err := svc.Create(context.Background(), "visitor", &dto.CreateReviewRequest{
		AgentID: "agent-1", Rating: 4,
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReviewed)
}

func TestReviewCreateStartsPending(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "someone-else", 25))

	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), agentRepo)

	resp, err := svc.Create(context.Background(), "visitor", &dto.CreateReviewRequest{
		AgentID: "agent-1", Rating: 4, Comment: "great agent",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.AgentID)
	assert.Equal(t, "agent-1", *resp.AgentID)
	assert.Nil(t, resp.PropertyID)
}

func TestReviewListForcesApprovedForVisitors(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), newFakeAgentRepo())

	_, err := svc.List(context.Background(), Viewer{}, dto.ReviewFilter{Status: "pending"})
	require.NoError(t, err)

	conds := reviewRepo.lastPred.Conds()
	require.Len(t, conds, 1)
	assert.Equal(t, "status = ?", conds[0].Expr)
	assert.Equal(t, []any{"approved"}, conds[0].Args)
}

func TestReviewListDefaultSortAndLimit(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), newFakeAgentRepo())

	_, err := svc.List(context.Background(), Viewer{}, dto.ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", reviewRepo.lastOrder)
	assert.Equal(t, 10, reviewRepo.lastPage.Limit)
}

func TestReviewModerationRefreshesAgentRating(t *testing.T) {
	agentRepo := newFakeAgentRepo()
	agentRepo.add(approvedAgent("agent-1", "someone", 25))

	reviewRepo := newFakeReviewRepo()
	agentID := "agent-1"
	review := &models.Review{UserID: "visitor", AgentID: &agentID, Rating: 5, Status: models.ReviewStatusPending}
	review.ID = "rev-1"
	reviewRepo.reviews["rev-1"] = review

	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), agentRepo)

	resp, err := svc.SetStatus(context.Background(), "rev-1", models.ReviewStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, []string{"agent-1"}, agentRepo.recalculated)
}

func TestReviewDeleteOnlyAuthorOrAdmin(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	review := &models.Review{UserID: "author", Rating: 3}
	review.ID = "rev-1"
	reviewRepo.reviews["rev-1"] = review

	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), newFakeAgentRepo())

	err := svc.Delete(context.Background(), Viewer{UserID: "stranger", Role: models.UserRoleUser}, "rev-1")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	err = svc.Delete(context.Background(), Viewer{UserID: "author", Role: models.UserRoleUser}, "rev-1")
	assert.NoError(t, err)
}

func TestReviewReact(t *testing.T) {
	reviewRepo := newFakeReviewRepo()
	review := &models.Review{UserID: "author", Rating: 3}
	review.ID = "rev-1"
	reviewRepo.reviews["rev-1"] = review

	svc := NewReviewService(reviewRepo, newFakePropertyRepo(), newFakeAgentRepo())

	require.NoError(t, svc.React(context.Background(), "rev-1", true))
	require.NoError(t, svc.React(context.Background(), "rev-1", false))
	assert.Equal(t, 1, review.Likes)
	assert.Equal(t, 1, review.Dislikes)

	err := svc.React(context.Background(), "missing", true)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
