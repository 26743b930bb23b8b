package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estatehub_backend/internal/models"
)

// newTestDB opens an in-memory database with the tables the repository
// tests touch. agent_profiles is left out on purpose: its array column is
// Postgres-only; the agent tests migrate a sqlite-compatible mirror instead.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Review{},
		&models.Favorite{},
		&models.SubscriptionPlan{},
		&models.AgentSubscription{},
		&models.Payment{},
	))
	return db
}
