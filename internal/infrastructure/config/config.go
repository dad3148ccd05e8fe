package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendPostgres = "postgres" // database/sql + lib/pq
	BackendGorm     = "gorm"     // gorm + gorm postgres driver
	BackendMemory   = "memory"   // in-process, no database
)

// Config represents the application configuration
type Config struct {
	Storage      StorageConfig
	Database     DatabaseConfig
	Metrics      MetricsConfig
	Log          LogConfig
	Capabilities string // Capability registry, e.g. "user:follower,followable;post:likeable"
}

// StorageConfig selects the relationship repository implementation
type StorageConfig struct {
	Backend string
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	SlowQueryThreshold time.Duration // Queries slower than this are logged by the gorm logger
}

// findProjectRoot finds the project root directory by looking for go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

// ProjectRoot returns the directory holding go.mod, searching upwards from the working directory
func ProjectRoot() (string, error) {
	return findProjectRoot()
}

// InitConfig initializes viper configuration
// env: environment name (dev, test, prod)
func InitConfig(env string) error {
	if env == "" {
		env = "dev"
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		return fmt.Errorf("failed to find project root: %w", err)
	}

	// .env.<env> at the project root is optional
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(projectRoot)
	_ = viper.ReadInConfig()

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	viper.SetDefault("STORAGE_BACKEND", BackendPostgres)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 15432)
	viper.SetDefault("DB_USER", "socialization")
	viper.SetDefault("DB_NAME", "socialization_dev")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SLOW_QUERY_MS", 100)

	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_NAMESPACE", "socialization")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	viper.SetDefault("CAPABILITIES", "")

	return nil
}

// Load loads configuration from viper
func Load() (*Config, error) {
	backend := strings.ToLower(viper.GetString("STORAGE_BACKEND"))
	switch backend {
	case BackendPostgres, BackendGorm, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q (want postgres, gorm or memory)", backend)
	}

	// DB_PASSWORD is required whenever a database is used
	dbPassword := viper.GetString("DB_PASSWORD")
	if dbPassword == "" && backend != BackendMemory {
		return nil, fmt.Errorf("DB_PASSWORD is required (set via environment variable or .env file)")
	}

	config := &Config{
		Storage: StorageConfig{
			Backend: backend,
		},
		Database: DatabaseConfig{
			Host:               viper.GetString("DB_HOST"),
			Port:               viper.GetInt("DB_PORT"),
			User:               viper.GetString("DB_USER"),
			Password:           dbPassword,
			Database:           viper.GetString("DB_NAME"),
			SSLMode:            viper.GetString("DB_SSLMODE"),
			SlowQueryThreshold: time.Duration(viper.GetInt("DB_SLOW_QUERY_MS")) * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled:   viper.GetBool("METRICS_ENABLED"),
			Namespace: viper.GetString("METRICS_NAMESPACE"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Capabilities: viper.GetString("CAPABILITIES"),
	}

	return config, nil
}

// ConnectionString returns PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}
