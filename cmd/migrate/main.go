package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/asakaida/socialization/internal/infrastructure/config"
	"github.com/asakaida/socialization/internal/infrastructure/database"
	"github.com/asakaida/socialization/internal/infrastructure/logging"
	"github.com/asakaida/socialization/internal/repositories/gormstore"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

var (
	envFlag  string
	pathFlag string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tool for socialization",
	Long: `Database migration tool for socialization.
Applies the relationships and mentions DDL to PostgreSQL using golang-migrate.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withMigrate(func(m *migrate.Migrate, args []string) error {
		return report(m.Up(), "Migration up completed", "No migrations to apply")
	}),
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withMigrate(func(m *migrate.Migrate, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid number of steps %q", args[0])
			}
			steps = n
		}
		return report(m.Steps(-steps), fmt.Sprintf("Rolled back %d migration(s)", steps), "No migrations to rollback")
	}),
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: withMigrate(func(m *migrate.Migrate, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return report(m.Migrate(uint(version)), fmt.Sprintf("Migrated to version %d", version), "Already at the requested version")
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current migration version",
	RunE: withMigrate(func(m *migrate.Migrate, args []string) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("No migrations applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Info("Current version", "version", version, "dirty", dirty)
		return nil
	}),
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Force set migration version (use with caution)",
	Args:  cobra.ExactArgs(1),
	RunE: withMigrate(func(m *migrate.Migrate, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("migration force failed: %w", err)
		}
		logger.Info("Migration version forced", "version", version)
		return nil
	}),
}

var autoMigrateCmd = &cobra.Command{
	Use:   "automigrate",
	Short: "Create or update the tables from the gorm models",
	Long: `Create or update the relationships and mentions tables from the gorm models.
Intended for development databases used with STORAGE_BACKEND=gorm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewGorm(&cfg.Database, logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := gormstore.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migration failed: %w", err)
		}
		logger.Info("Auto migration completed")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", "dev", "Environment to use (dev, test, prod)")
	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "Migrations directory (default: <project root>/"+database.DefaultMigrationsPath+")")

	rootCmd.AddCommand(upCmd, downCmd, gotoCmd, versionCmd, forceCmd, autoMigrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.InitConfig(envFlag); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = logging.New(&cfg.Log)
	if err != nil {
		return err
	}
	logger.Debug("Using environment", "env", envFlag)
	return nil
}

// withMigrate opens the database and a migrate instance around fn
func withMigrate(fn func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		pg, err := database.NewPostgres(&cfg.Database)
		if err != nil {
			return err
		}
		defer pg.Close()

		logger.Info("Connected to database",
			"user", cfg.Database.User,
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"database", cfg.Database.Database,
		)

		path, err := migrationsPath()
		if err != nil {
			return err
		}
		logger.Debug("Using migrations path", "path", path)

		m, err := database.NewMigrate(pg.DB, path)
		if err != nil {
			return err
		}
		defer m.Close()

		return fn(m, args)
	}
}

func migrationsPath() (string, error) {
	if pathFlag != "" {
		return pathFlag, nil
	}
	root, err := config.ProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	return filepath.Join(root, database.DefaultMigrationsPath), nil
}

func report(err error, done, noChange string) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info(noChange)
		return nil
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info(done)
	return nil
}
