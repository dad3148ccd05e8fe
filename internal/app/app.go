// Package app assembles the social services from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/asakaida/socialization/internal/entities"
	"github.com/asakaida/socialization/internal/infrastructure/config"
	"github.com/asakaida/socialization/internal/infrastructure/database"
	"github.com/asakaida/socialization/internal/infrastructure/metrics"
	"github.com/asakaida/socialization/internal/repositories"
	"github.com/asakaida/socialization/internal/repositories/gormstore"
	"github.com/asakaida/socialization/internal/repositories/memory"
	"github.com/asakaida/socialization/internal/repositories/postgres"
	"github.com/asakaida/socialization/internal/services/social"
	"github.com/prometheus/client_golang/prometheus"
)

// App holds the wired services and the resources behind them
type App struct {
	Social    *social.Service
	Registry  *entities.Registry
	Metrics   *prometheus.Registry // nil when metrics are disabled
	Collector *metrics.Collector   // nil when metrics are disabled
	Backend   string

	closers []func() error
}

type storage struct {
	relationships repositories.RelationshipRepository
	mentions      repositories.MentionRepository
	close         func() error
}

// New connects the configured storage backend and builds the social service on it
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	registry, err := entities.ParseRegistry(cfg.Capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capabilities: %w", err)
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		Registry: registry,
		Backend:  cfg.Storage.Backend,
	}
	if store.close != nil {
		a.closers = append(a.closers, store.close)
	}

	relationships, mentions := store.relationships, store.mentions
	if cfg.Metrics.Enabled {
		a.Metrics = prometheus.NewRegistry()
		a.Collector = metrics.NewCollector()
		exporter := metrics.NewPrometheusExporter(a.Metrics, cfg.Metrics.Namespace)
		relationships = metrics.InstrumentRelationships(relationships, a.Collector, exporter)
		mentions = metrics.InstrumentMentions(mentions, a.Collector, exporter)
	}

	a.Social = social.New(relationships, mentions)

	log.Info("social service ready",
		"backend", cfg.Storage.Backend,
		"metrics", cfg.Metrics.Enabled,
	)
	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pg, err := database.NewPostgres(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pg.HealthCheck(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		log.Debug("connected to database",
			"user", cfg.Database.User,
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"database", cfg.Database.Database,
		)
		return &storage{
			relationships: postgres.NewPostgresRelationshipRepository(pg.DB),
			mentions:      postgres.NewPostgresMentionRepository(pg.DB),
			close:         pg.Close,
		}, nil

	case config.BackendGorm:
		db, err := database.NewGorm(&cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return &storage{
			relationships: gormstore.NewGormRelationshipRepository(db),
			mentions:      gormstore.NewGormMentionRepository(db),
			close:         sqlDB.Close,
		}, nil

	case config.BackendMemory:
		return &storage{
			relationships: memory.NewRelationshipRepository(),
			mentions:      memory.NewMentionRepository(),
		}, nil
	}

	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

// Resolve parses a "type:id" reference and attaches the registry's capabilities to it
func (a *App) Resolve(s string) (entities.Entity, error) {
	ref, err := entities.ParseRef(s)
	if err != nil {
		return nil, err
	}
	return a.Registry.Resolve(ref), nil
}

// Close releases the storage resources
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
