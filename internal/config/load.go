package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variables read by Load.
const EnvPrefix = "TODO"

// setDefaults registers the default value of every optional key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.exporter", "none")
	v.SetDefault("telemetry.service_name", "todo-api")
	v.SetDefault("telemetry.endpoint", "localhost:4318")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load configuration from a .env file, environment variables and optionally
// a config.yaml file. Environment variables take precedence over values from
// config files. Variables use the TODO_ prefix (TODO_SERVER_PORT); the
// database URL is also read from a bare DATABASE_URL.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
