package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/config"
	"github.com/avecbanker/backend/internal/integration/persistence/model"
)

func TestNewConnectionSQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		URL:             "sqlite:file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	}

	database, err := NewConnection(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxOpenConns)

	require.NoError(t, database.Migrate())
	assert.True(t, database.DB().Migrator().HasTable(&model.GoalModel{}))
	assert.True(t, database.DB().Migrator().HasTable(&model.BudgetProfileModel{}))
	assert.True(t, database.HealthCheck())

	require.NoError(t, database.Close())
	assert.False(t, database.HealthCheck())
}
