package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

// agentProfileSchema mirrors the agent_profiles table with the array column
// as plain text, so sqlite can migrate it for these tests.
type agentProfileSchema struct {
	models.BaseModel
	UserID             string `gorm:"uniqueIndex"`
	RegistrationNumber string `gorm:"uniqueIndex"`
	Verification       string
	AgencyName         string
	Bio                string
	City               string
	State              string
	Specialties        string
	YearsExperience    int
	CommissionRate     float64
	ListingLimit       int
	Plan               string
	BankName           string
	BankAccount        string
	Rating             float64
}

func (agentProfileSchema) TableName() string { return "agent_profiles" }

func newAgentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&agentProfileSchema{}))
	return db
}

func seedAgent(t *testing.T, repo AgentRepository, reg string, createdAt time.Time) *models.AgentProfile {
	t.Helper()
	profile := &models.AgentProfile{
		UserID:             uuid.NewString(),
		RegistrationNumber: reg,
		Verification:       models.VerificationApproved,
	}
	profile.CreatedAt = createdAt
	require.NoError(t, repo.Create(profile))
	return profile
}

func TestAgentRepository_SearchSortsAcrossUsersJoin(t *testing.T) {
	repo := NewAgentRepository(newAgentTestDB(t))

	older := seedAgent(t, repo, "REG-100", time.Now().Add(-2*time.Hour))
	newer := seedAgent(t, repo, "REG-200", time.Now().Add(-time.Hour))

	pred, err := query.NewBuilder().Build()
	require.NoError(t, err)

	// Both agent_profiles and the joined users table carry created_at;
	// the sort clause has to stay unambiguous over that join.
	profiles, total, err := repo.Search(pred, AgentSortFields["newest"], query.ParsePage("", "", 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, profiles, 2)
	assert.Equal(t, newer.ID, profiles[0].ID)
	assert.Equal(t, older.ID, profiles[1].ID)

	profiles, _, err = repo.Search(pred, AgentSortFields["oldest"], query.ParsePage("", "", 20))
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, older.ID, profiles[0].ID)
}

func TestAgentRepository_FindByIDPreloadsApprovedReviewsOnly(t *testing.T) {
	db := newAgentTestDB(t)
	agentRepo := NewAgentRepository(db)
	reviewRepo := NewReviewRepository(db)

	profile := seedAgent(t, agentRepo, "REG-300", time.Now())

	statuses := []models.ReviewStatus{
		models.ReviewStatusApproved,
		models.ReviewStatusApproved,
		models.ReviewStatusPending,
	}
	for _, status := range statuses {
		require.NoError(t, reviewRepo.Create(&models.Review{
			UserID:  uuid.NewString(),
			AgentID: strPtr(profile.ID),
			Rating:  5,
			Status:  status,
		}))
	}

	got, err := agentRepo.FindByID(profile.ID)
	require.NoError(t, err)
	assert.Len(t, got.Reviews, 2)
}
