// Package config resolves the application configuration from the
// environment. A local .env file is honored when present so development
// setups need no exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"retail-analytics/internal/apperror"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Placeholder secrets that must never survive into production.
const (
	defaultSecretKey = "dev-secret-key-change-in-production"
	defaultJWTSecret = "jwt-secret-key-change-in-production"
)

// DatabaseConfig holds connection and pool settings for one backend.
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string // sqlite only
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// Config is the full application configuration.
type Config struct {
	Env         string
	AppName     string
	Version     string
	Port        string
	Debug       bool
	SecretKey   string
	LogLevel    string
	CORSOrigins []string
	SeedOnStart bool
	JWT         JWTConfig
	Database    DatabaseConfig
}

// Load resolves the configuration for the APP_ENV profile and validates it.
func Load() (*Config, error) {
	// Missing .env files are fine; exported variables win either way.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", EnvDevelopment)
	cfg := &Config{
		Env:         env,
		AppName:     "retail-analytics",
		Version:     "1.0.0",
		Port:        getEnv("PORT", "8080"),
		Debug:       getEnvBool("DEBUG", env == EnvDevelopment),
		SecretKey:   getEnv("SECRET_KEY", defaultSecretKey),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8501")),
		SeedOnStart: getEnvBool("SEED_DB", false),
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET_KEY", defaultJWTSecret),
			AccessTTL: getEnvDuration("JWT_ACCESS_TTL", time.Hour),
		},
		Database: loadDatabaseConfig(env),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDatabaseConfig(env string) DatabaseConfig {
	cfg := DatabaseConfig{
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
	}

	switch env {
	case EnvTesting:
		cfg.Driver = DriverSQLite
		cfg.Path = ":memory:"
	case EnvProduction:
		cfg.Driver = DriverPostgres
	default:
		cfg.Driver = getEnv("DB_DRIVER", DriverSQLite)
		cfg.Path = getEnv("DB_PATH", "retail_analytics_dev.db")
	}

	if cfg.Driver == DriverPostgres {
		cfg.Host = getEnv("DB_HOST", "localhost")
		cfg.Port = getEnv("DB_PORT", "5432")
		cfg.Name = getEnv("DB_NAME", "retail_analytics")
		cfg.User = getEnv("DB_USER", "")
		cfg.Password = getEnv("DB_PASSWORD", "")
		cfg.SSLMode = getEnv("DB_SSLMODE", "disable")
	}
	return cfg
}

// Validate rejects configurations that are unsafe to boot with. Development
// and testing run on defaults; production must provide real secrets and
// database credentials.
func (c *Config) Validate() error {
	if c.Env != EnvProduction {
		return nil
	}
	if c.SecretKey == "" || c.SecretKey == defaultSecretKey {
		return apperror.Configuration("SECRET_KEY must be set in production")
	}
	if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
		return apperror.Configuration("JWT_SECRET_KEY must be set in production")
	}
	if c.Database.User == "" || c.Database.Name == "" {
		return apperror.Configuration("DB_USER and DB_NAME must be set in production")
	}
	return nil
}

// IsProduction reports whether the production profile is active.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("1h30m") and, for parity with
// plain-seconds deployments, bare integers of seconds ("3600").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
