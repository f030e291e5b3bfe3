package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// TelemetryConfig controls OpenTelemetry metrics and tracing.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Exporter    string `mapstructure:"exporter" validate:"omitempty,oneof=none stdout otlp-http"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// CORSConfig lists the origins the browser client may call from.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
