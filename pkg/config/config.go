package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Engine        EngineConfig
	Database      DatabaseConfig
	Watch         WatchConfig
	Reports       ReportsConfig
	Audit         AuditConfig
	Retention     RetentionConfig
	Observability ObservabilityConfig
}

type EngineConfig struct {
	// ClusterTolerancePercent is the relative deviation, in percent, within
	// which a credit amount joins an existing amount cluster.
	ClusterTolerancePercent float64

	PayrollHourStart int
	PayrollHourEnd   int

	// MatchTolerancePercent bounds the accepted deviation between the
	// detected salary and a caller-supplied expected gross.
	MatchTolerancePercent float64

	// StatementsPerSecond rate-limits statement processing in watch mode.
	StatementsPerSecond float64
	Burst               int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Enabled toggles the archive; without it results are file-only.
	Enabled bool
}

type WatchConfig struct {
	// InputDir is polled for new statement PDFs in watch mode.
	InputDir     string
	PollInterval time.Duration

	// PDFPassword opens encrypted statements. Thai banks typically use the
	// account holder's date of birth or citizen id fragment.
	PDFPassword string
}

type ReportsConfig struct {
	OutputDir string
	// MaskPII controls whether exported descriptions and payers are replaced
	// with reversible placeholder tokens.
	MaskPII bool
}

type AuditConfig struct {
	// IndexPath is the on-disk bleve index location; empty means in-memory.
	IndexPath string
}

type RetentionConfig struct {
	// Schedule is a cron expression for the archive sweep.
	Schedule string
	MaxAge   time.Duration
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Engine: EngineConfig{
			ClusterTolerancePercent: getEnvAsFloat("ENGINE_CLUSTER_TOLERANCE_PERCENT", 3),
			PayrollHourStart:        getEnvAsInt("ENGINE_PAYROLL_HOUR_START", 1),
			PayrollHourEnd:          getEnvAsInt("ENGINE_PAYROLL_HOUR_END", 6),
			MatchTolerancePercent:   getEnvAsFloat("ENGINE_MATCH_TOLERANCE_PERCENT", 5),
			StatementsPerSecond:     getEnvAsFloat("ENGINE_STATEMENTS_PER_SECOND", 2),
			Burst:                   getEnvAsInt("ENGINE_BURST", 5),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "statements-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			Enabled:  getEnvAsBool("ARCHIVE_ENABLED", false),
		},
		Watch: WatchConfig{
			InputDir:     getEnv("WATCH_INPUT_DIR", "./statements"),
			PollInterval: getEnvAsDuration("WATCH_POLL_INTERVAL", 30*time.Second),
			PDFPassword:  getEnv("PDF_PASSWORD", ""),
		},
		Reports: ReportsConfig{
			OutputDir: getEnv("REPORTS_OUTPUT_DIR", "./reports"),
			MaskPII:   getEnvAsBool("REPORTS_MASK_PII", true),
		},
		Audit: AuditConfig{
			IndexPath: getEnv("AUDIT_INDEX_PATH", ""),
		},
		Retention: RetentionConfig{
			Schedule: getEnv("RETENTION_SCHEDULE", "0 3 * * *"),
			MaxAge:   getEnvAsDuration("RETENTION_MAX_AGE", 180*24*time.Hour),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	if cfg.Engine.PayrollHourStart > cfg.Engine.PayrollHourEnd {
		return nil, fmt.Errorf("payroll hour window is inverted: %d > %d",
			cfg.Engine.PayrollHourStart, cfg.Engine.PayrollHourEnd)
	}
	if cfg.Engine.ClusterTolerancePercent <= 0 {
		return nil, fmt.Errorf("cluster tolerance must be positive, got %v",
			cfg.Engine.ClusterTolerancePercent)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
