package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// Server settings
	ServerPort      string        `yaml:"server_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug"`

	// Application version
	Version string `yaml:"version"`

	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Docs     DocsConfig     `yaml:"docs"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Dir enables a rotating app.log next to stdout output when set.
	Dir string `yaml:"dir"`
}

type DatabaseConfig struct {
	Driver             string        `yaml:"driver"`
	Path               string        `yaml:"path"`
	URL                string        `yaml:"url"`
	MaxConnections     int           `yaml:"max_connections"`
	MaxIdleConnections int           `yaml:"max_idle_connections"`
	ConnMaxLifetime    time.Duration `yaml:"conn_max_lifetime"`
	BusyTimeout        time.Duration `yaml:"busy_timeout"`
}

// Location is the value handed to the store and migrator: a file path for
// SQLite, a connection URL for PostgreSQL.
func (d DatabaseConfig) Location() string {
	if d.Driver == DriverPostgres {
		return d.URL
	}
	return d.Path
}

type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

type DocsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServerPort:      "8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Version:         "1.0.0",

		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},

		Database: DatabaseConfig{
			Driver:             DriverSQLite,
			Path:               "./data/videos.db",
			MaxConnections:     10,
			MaxIdleConnections: 5,
			ConnMaxLifetime:    time.Hour,
			BusyTimeout:        5 * time.Second,
		},

		CORS: CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         86400,
		},

		Docs:    DocsConfig{Enabled: true},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load builds the configuration with the following priority:
// environment variables > config file > defaults.
// The config file is optional; path falls back to CONFIG_FILE.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.ReadTimeout = getEnvAsDuration("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsDuration("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = getEnvAsDuration("IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.Debug = getEnvAsBool("DEBUG", cfg.Debug)
	cfg.Version = getEnv("VERSION", cfg.Version)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Dir = getEnv("LOG_DIR", cfg.Log.Dir)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxConnections = getEnvAsInt("DB_MAX_CONNECTIONS", cfg.Database.MaxConnections)
	cfg.Database.MaxIdleConnections = getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", cfg.Database.MaxIdleConnections)
	cfg.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)
	cfg.Database.BusyTimeout = getEnvAsDuration("DB_BUSY_TIMEOUT", cfg.Database.BusyTimeout)

	cfg.CORS.Enabled = getEnvAsBool("CORS_ENABLED", cfg.CORS.Enabled)
	cfg.CORS.AllowedOrigins = getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowedMethods = getEnvAsStringSlice("CORS_ALLOWED_METHODS", cfg.CORS.AllowedMethods)
	cfg.CORS.AllowedHeaders = getEnvAsStringSlice("CORS_ALLOWED_HEADERS", cfg.CORS.AllowedHeaders)
	cfg.CORS.ExposedHeaders = getEnvAsStringSlice("CORS_EXPOSED_HEADERS", cfg.CORS.ExposedHeaders)
	cfg.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", cfg.CORS.AllowCredentials)
	cfg.CORS.MaxAge = getEnvAsInt("CORS_MAX_AGE", cfg.CORS.MaxAge)

	cfg.Docs.Enabled = getEnvAsBool("DOCS_ENABLED", cfg.Docs.Enabled)
	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", cfg.Metrics.Enabled)
}

func (c *Config) Validate() error {
	if err := validateDatabase(c); err != nil {
		return err
	}

	if err := validateTimeouts(c); err != nil {
		return err
	}

	if err := validateLog(c); err != nil {
		return err
	}

	return nil
}

func validateDatabase(c *Config) error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path is required for the sqlite driver")
		}
		if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
			return errors.Wrap(err, "failed to create database directory")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func validateTimeouts(c *Config) error {
	if c.ReadTimeout <= 0 {
		return errors.New("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return errors.New("write timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

func validateLog(c *Config) error {
	switch c.Log.Format {
	case "text", "json":
		return nil
	default:
		return errors.Errorf("unsupported log format %q", c.Log.Format)
	}
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return defaultValue
}
