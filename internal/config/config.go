package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds the service configuration.
type Config struct {
	AppPort         string
	ShutdownTimeout time.Duration

	DatabaseDriver  string
	DatabaseDSN     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool

	RabbitMQURL      string
	RabbitMQExchange string

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file, then environment variables, falling back
// to defaults for anything unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from v after registering defaults and binding the
// environment.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=catalog port=5432 sslmode=disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalog")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()
	// DATABASE_URL is accepted for compatibility with the usual connection-string variable.
	if err := v.BindEnv("DATABASE_DSN", "DATABASE_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_DSN: %w", err)
	}

	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		ShutdownTimeout:  v.GetDuration("APP_SHUTDOWN_TIMEOUT"),
		DatabaseDriver:   v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		MaxOpenConns:     v.GetInt("DATABASE_MAX_OPEN_CONNS"),
		MaxIdleConns:     v.GetInt("DATABASE_MAX_IDLE_CONNS"),
		ConnMaxLifetime:  v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		AutoMigrate:      v.GetBool("DATABASE_AUTO_MIGRATE"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDriver != DriverMemory && c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("DATABASE_MAX_OPEN_CONNS must be positive, got %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("DATABASE_MAX_IDLE_CONNS must be positive, got %d", c.MaxIdleConns)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// EventsEnabled reports whether catalog events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
