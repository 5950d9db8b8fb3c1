package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Storage drivers accepted by DatabaseConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// DatabaseConfig selects the card storage backend and its connection settings.
type DatabaseConfig struct {
	Driver    string `mapstructure:"driver" validate:"required,oneof=memory postgres redis"`
	URL       string `mapstructure:"url" validate:"required_if=Driver postgres"`
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	Login                string `mapstructure:"login" validate:"required"`
	PasswordHash         string `mapstructure:"password_hash" validate:"required"`
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// TokenLifetime returns the configured token lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}
