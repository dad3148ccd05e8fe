package gormstore

import (
	"testing"

	"github.com/asakaida/socialization/internal/infrastructure/config"
	"github.com/asakaida/socialization/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupGormDB opens a gorm session against the test database and migrates the
// models. The test is skipped when no database is configured.
func setupGormDB(t *testing.T) *gorm.DB {
	t.Helper()

	require.NoError(t, config.InitConfig("test"))

	cfg, err := config.Load()
	if err != nil {
		t.Skipf("Skipping database test: %v", err)
	}

	db, err := database.NewGorm(&cfg.Database, nil)
	if err != nil {
		t.Skipf("Skipping database test: %v", err)
	}
	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		db.Exec("DELETE FROM mentions")
		db.Exec("DELETE FROM relationships")
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
