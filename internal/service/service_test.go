package service_test

import (
	"testing"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database. A single connection
// keeps every goroutine on the same database and serializes access the
// way a real MySQL instance would serialize conflicting row updates.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&model.Profile{},
		&model.KarmaItem{},
		&model.Redemption{},
		&model.Pickup{},
		&model.Notification{},
	))
	return gdb
}

func seedProfile(t *testing.T, db *gorm.DB, points int64) string {
	t.Helper()
	p := model.Profile{
		ID:          uuid.NewString(),
		Name:        "Test User",
		UserType:    model.UserTypeUser,
		KarmaPoints: points,
	}
	require.NoError(t, db.Create(&p).Error)
	return p.ID
}

func seedItem(t *testing.T, db *gorm.DB, points int64, stock *int64) string {
	t.Helper()
	item := model.KarmaItem{
		ID:     uuid.NewString(),
		Title:  "Steel Water Bottle",
		Points: points,
		Stock:  stock,
	}
	require.NoError(t, db.Create(&item).Error)
	return item.ID
}

func stockOf(n int64) *int64 {
	return &n
}
