package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type counter struct {
	ID    uint `gorm:"primaryKey"`
	Value int
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(&counter{}))
	return database
}

func TestRunInTransaction_ContextCarriesTx(t *testing.T) {
	database := openTestDB(t)

	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		assert.Same(t, tx, GetTxFromContext(ctx, database))
		return tx.Create(&counter{Value: 1}).Error
	})
	require.NoError(t, err)

	var n int64
	require.NoError(t, database.Model(&counter{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	boom := errors.New("boom")

	err := RunInTransaction(context.Background(), database, func(_ context.Context, tx *gorm.DB) error {
		require.NoError(t, tx.Create(&counter{Value: 1}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, database.Model(&counter{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetTxFromContext_FallsBackToDefault(t *testing.T) {
	database := openTestDB(t)
	got := GetTxFromContext(context.Background(), database)
	require.NotNil(t, got)
	assert.NotSame(t, database, got)
}
