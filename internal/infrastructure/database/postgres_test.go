package database

import (
	"context"
	"testing"

	"github.com/asakaida/socialization/internal/infrastructure/config"
)

func TestPostgres_Close(t *testing.T) {
	pg := &Postgres{DB: nil}
	if err := pg.Close(); err != nil {
		t.Errorf("Postgres.Close() error = %v, want nil", err)
	}
}

func TestNewPostgres_InvalidConfig(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     99999,
		User:     "invalid",
		Password: "invalid",
		Database: "invalid",
		SSLMode:  "disable",
	}

	pg, err := NewPostgres(cfg)
	if err == nil {
		if pg != nil && pg.DB != nil {
			pg.Close()
		}
		t.Error("NewPostgres() with invalid config should return error")
	}
}

func TestPostgres_Integration(t *testing.T) {
	if err := config.InitConfig("test"); err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Skipf("Skipping database test: %v", err)
	}

	pg, err := NewPostgres(&cfg.Database)
	if err != nil {
		t.Skipf("Skipping database test: %v", err)
	}
	defer pg.Close()

	if err := pg.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	// Applying the migrations twice is a no-op the second time
	for i := 0; i < 2; i++ {
		if err := pg.RunMigrations("migrations/postgres"); err != nil {
			t.Fatalf("RunMigrations() #%d error = %v", i+1, err)
		}
	}
}
