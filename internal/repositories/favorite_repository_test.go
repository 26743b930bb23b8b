package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub_backend/internal/models"
)

func TestFavoriteRepository_CreateRejectsDuplicate(t *testing.T) {
	repo := NewFavoriteRepository(newTestDB(t))

	userID := uuid.NewString()
	propertyID := uuid.NewString()

	require.NoError(t, repo.Create(&models.Favorite{UserID: userID, PropertyID: propertyID}))

	err := repo.Create(&models.Favorite{UserID: userID, PropertyID: propertyID})
	assert.ErrorIs(t, err, ErrFavoriteExists)

	exists, err := repo.Exists(userID, propertyID)
	require.NoError(t, err)
	assert.True(t, exists)

	// A different user may favorite the same property.
	require.NoError(t, repo.Create(&models.Favorite{UserID: uuid.NewString(), PropertyID: propertyID}))

	count, err := repo.CountByProperty(propertyID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestFavoriteRepository_DeleteMissing(t *testing.T) {
	repo := NewFavoriteRepository(newTestDB(t))

	userID := uuid.NewString()
	propertyID := uuid.NewString()
	require.NoError(t, repo.Create(&models.Favorite{UserID: userID, PropertyID: propertyID}))

	require.NoError(t, repo.Delete(userID, propertyID))

	err := repo.Delete(userID, propertyID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)

	exists, err := repo.Exists(userID, propertyID)
	require.NoError(t, err)
	assert.False(t, exists)
}
