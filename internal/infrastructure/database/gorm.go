package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/asakaida/socialization/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGorm opens a gorm session on PostgreSQL. Driver errors are translated so
// unique violations surface as gorm.ErrDuplicatedKey. A nil log discards
// gorm's output.
func NewGorm(cfg *config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.ConnectionString()), &gorm.Config{
		Logger:         NewGormLogger(log, cfg.SlowQueryThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	configurePool(sqlDB)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// GormLogger reports slow queries and real errors to slog and drops
// everything else, including record-not-found.
type GormLogger struct {
	log           *slog.Logger
	SlowThreshold time.Duration
}

var _ logger.Interface = (*GormLogger)(nil)

// NewGormLogger creates a gorm logger. A zero threshold disables slow query reports.
func NewGormLogger(log *slog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{log: log, SlowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.WarnContext(ctx, "gorm: "+fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.ErrorContext(ctx, "gorm: "+fmt.Sprintf(msg, data...))
}

// Trace logs failed and slow queries. Duplicate keys are expected and go to debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.log == nil {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// callers absorb duplicates as "already related"
		sql, _ := fc()
		l.log.DebugContext(ctx, "duplicate key",
			"error", err,
			"sql", sql,
		)
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "query failed",
			"error", err,
			"elapsed", elapsed,
			"rows", rows,
			"sql", sql,
		)
	case l.SlowThreshold > 0 && elapsed >= l.SlowThreshold:
		sql, rows := fc()
		l.log.WarnContext(ctx, "slow query",
			"elapsed", elapsed,
			"threshold", l.SlowThreshold,
			"rows", rows,
			"sql", sql,
		)
	}
}
