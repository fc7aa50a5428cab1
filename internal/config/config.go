package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	CORS   CORSConfig   `mapstructure:"cors"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"             validate:"omitempty,ip|hostname"`
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the host:port pair the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig controls cross-origin access. The defaults are development
// grade (any origin); narrow AllowedOrigins before exposing the API.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"   validate:"required,min=1,dive,required"`
	AllowedMethods   []string `mapstructure:"allowed_methods"   validate:"required,min=1,dive,required"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"   validate:"dive,required"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"           validate:"gte=0"`
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
