// Package config loads the service configuration from struct defaults, an
// optional YAML file, a .env.dev file in debug mode, and the environment.
package config

import (
	"fmt"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	GinMode string `koanf:"gin_mode" validate:"required,oneof=debug release test"`
	TZ      string `koanf:"tz" validate:"required"`

	HTTPAddr         string        `koanf:"http_addr" validate:"required"`
	HTTPReadTimeout  time.Duration `koanf:"http_read_timeout" validate:"gt=0"`
	HTTPWriteTimeout time.Duration `koanf:"http_write_timeout" validate:"gt=0"`
	HTTPIdleTimeout  time.Duration `koanf:"http_idle_timeout" validate:"gt=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	LogLevel string `koanf:"log_level" validate:"required,oneof=trace debug info warn error"`

	DBDriver          string        `koanf:"db_driver" validate:"required,oneof=postgres sqlite"`
	DBHost            string        `koanf:"db_host" validate:"required_if=DBDriver postgres"`
	DBPort            string        `koanf:"db_port" validate:"required_if=DBDriver postgres"`
	DBUser            string        `koanf:"db_user" validate:"required_if=DBDriver postgres"`
	DBPass            string        `koanf:"db_pass"`
	DBName            string        `koanf:"db_name" validate:"required_if=DBDriver postgres"`
	DBSSLMode         string        `koanf:"db_sslmode"`
	DBPath            string        `koanf:"db_path" validate:"required_if=DBDriver sqlite"`
	DBMaxOpenConns    int           `koanf:"db_max_open_conns" validate:"gte=0"`
	DBMaxIdleConns    int           `koanf:"db_max_idle_conns" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `koanf:"db_conn_max_lifetime" validate:"gte=0"`
	DBConnectAttempts int           `koanf:"db_connect_attempts" validate:"gte=1"`
	DBConnectDelay    time.Duration `koanf:"db_connect_delay" validate:"gte=0"`

	MetricsNamespace string `koanf:"metrics_namespace" validate:"required"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	// MetricsBuckets overrides the request duration histogram buckets.
	// Empty keeps the Prometheus defaults.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`
}

// New returns the defaults every other source is layered on.
func New() *Config {
	return &Config{
		GinMode:           "debug",
		TZ:                "UTC",
		HTTPAddr:          ":8080",
		HTTPReadTimeout:   5 * time.Second,
		HTTPWriteTimeout:  10 * time.Second,
		HTTPIdleTimeout:   60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
		DBDriver:          DriverPostgres,
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "postgres",
		DBName:            "postgres",
		DBPath:            "catalog.db",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: 30 * time.Minute,
		DBConnectAttempts: 10,
		DBConnectDelay:    2 * time.Second,
		MetricsNamespace:  "catalog",
		MetricsSubsystem:  "api",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

// SQLiteDSN always turns on foreign key enforcement, which SQLite leaves off
// by default.
func (c *Config) SQLiteDSN() string {
	return "file:" + c.DBPath + "?_foreign_keys=on"
}
