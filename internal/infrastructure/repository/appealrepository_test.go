package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
)

func TestAppealRepository_RecordDecision(t *testing.T) {
	repo := NewAppealRepository(setupTestDB(t, &models.AppealModel{}))
	ctx := context.Background()

	t.Run("creates missing row", func(t *testing.T) {
		row, err := repo.RecordDecision(ctx, domain.AppealDecision{
			AppealID:       "apl_1",
			Status:         "rejected",
			DecidedAt:      testNow,
			DecidedBy:      "u-100",
			DecisionReason: "no context",
			Meta:           map[string]any{"history": []any{"rejected"}},
		})
		require.NoError(t, err)
		require.NotNil(t, row.Status)
		assert.Equal(t, "rejected", *row.Status)
		require.NotNil(t, row.DecidedAt)
		assert.True(t, testNow.Equal(*row.DecidedAt))
		assert.Equal(t, "u-100", *row.DecidedBy)
	})

	t.Run("second decision merges meta", func(t *testing.T) {
		later := testNow.Add(time.Hour)
		_, err := repo.RecordDecision(ctx, domain.AppealDecision{
			AppealID:  "apl_1",
			Status:    "approved",
			DecidedAt: later,
			DecidedBy: "u-101",
			Meta:      map[string]any{"reviewed": true},
		})
		require.NoError(t, err)

		row, err := repo.FetchAppeal(ctx, "apl_1")
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "approved", *row.Status)
		assert.Equal(t, "u-101", *row.DecidedBy)
		assert.Equal(t, "", *row.DecisionReason)
		assert.Equal(t, true, row.Meta["reviewed"])
		assert.Equal(t, []any{"rejected"}, row.Meta["history"])
	})
}

func TestAppealRepository_Fetch(t *testing.T) {
	database := setupTestDB(t, &models.AppealModel{})
	repo := NewAppealRepository(database)
	ctx := context.Background()

	require.NoError(t, database.Create(&models.AppealModel{ID: "apl_a", Status: "new"}).Error)
	require.NoError(t, database.Create(&models.AppealModel{ID: "apl_b", Status: "pending"}).Error)

	rows, err := repo.FetchMany(ctx, []string{"apl_a", "apl_b", "apl_missing"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "pending", *rows["apl_b"].Status)
	assert.Nil(t, rows["apl_a"].DecidedAt)
	assert.Nil(t, rows["apl_a"].Meta)

	empty, err := repo.FetchMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	missing, err := repo.FetchAppeal(ctx, "apl_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
