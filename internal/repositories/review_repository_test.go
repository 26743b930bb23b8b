package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

func strPtr(s string) *string { return &s }

func TestReviewRepository_OneReviewPerTarget(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	userID := uuid.NewString()
	propertyID := uuid.NewString()

	require.NoError(t, repo.Create(&models.Review{
		UserID:     userID,
		PropertyID: strPtr(propertyID),
		Rating:     4,
		Comment:    "Bright and quiet",
		Status:     models.ReviewStatusPending,
	}))

	err := repo.Create(&models.Review{
		UserID:     userID,
		PropertyID: strPtr(propertyID),
		Rating:     5,
		Status:     models.ReviewStatusPending,
	})
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)

	// The rule is per target: the same user may still review an agent.
	require.NoError(t, repo.Create(&models.Review{
		UserID:  userID,
		AgentID: strPtr(uuid.NewString()),
		Rating:  3,
		Status:  models.ReviewStatusPending,
	}))
}

func TestReviewRepository_IncrementReaction(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	review := &models.Review{
		UserID:     uuid.NewString(),
		PropertyID: strPtr(uuid.NewString()),
		Rating:     5,
		Status:     models.ReviewStatusApproved,
	}
	require.NoError(t, repo.Create(review))

	require.NoError(t, repo.IncrementReaction(review.ID, "likes"))
	require.NoError(t, repo.IncrementReaction(review.ID, "likes"))
	require.NoError(t, repo.IncrementReaction(review.ID, "dislikes"))

	got, err := repo.FindByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)
	assert.Equal(t, 1, got.Dislikes)

	err = repo.IncrementReaction(uuid.NewString(), "likes")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewRepository_SetStatusIdempotent(t *testing.T) {
	repo := NewReviewRepository(newTestDB(t))

	review := &models.Review{
		UserID:     uuid.NewString(),
		PropertyID: strPtr(uuid.NewString()),
		Rating:     2,
		Status:     models.ReviewStatusPending,
	}
	require.NoError(t, repo.Create(review))

	got, err := repo.SetStatus(review.ID, models.ReviewStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, got.Status)

	got, err = repo.SetStatus(review.ID, models.ReviewStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, got.Status)
}

func TestReviewRepository_SearchFiltersByPredicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)

	propertyID := uuid.NewString()
	for _, status := range []models.ReviewStatus{
		models.ReviewStatusApproved,
		models.ReviewStatusApproved,
		models.ReviewStatusPending,
	} {
		require.NoError(t, repo.Create(&models.Review{
			UserID:     uuid.NewString(),
			PropertyID: strPtr(propertyID),
			Rating:     4,
			Status:     status,
		}))
	}

	pred, err := query.NewBuilder().
		Equals("status", string(models.ReviewStatusApproved)).
		Build()
	require.NoError(t, err)

	reviews, total, err := repo.Search(pred, "created_at DESC", query.ParsePage("1", "10", 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, models.ReviewStatusApproved, r.Status)
	}
}
