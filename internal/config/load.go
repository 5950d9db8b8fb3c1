package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "KANBAN"

// keys lists every configuration key. Each one is bound to its environment
// variable so Unmarshal sees values that only exist in the environment.
var keys = []string{
	"server.port",
	"server.log_level",
	"database.driver",
	"database.url",
	"database.redis_addr",
	"auth.login",
	"auth.password_hash",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
}

// Options controls where Load looks for configuration files.
type Options struct {
	// ConfigDir is searched for config.yaml. Defaults to the working directory.
	ConfigDir string
	// DotEnvFile is read when present. Defaults to ".env".
	DotEnvFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions is Load with explicit file locations.
// Precedence, highest first: process environment, .env file, config.yaml, defaults.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.ConfigDir == "" {
		opts.ConfigDir = "."
	}
	if opts.DotEnvFile == "" {
		opts.DotEnvFile = ".env"
	}

	v := viper.New()

	// 1. Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("auth.token_lifetime_minutes", 60)

	// 2. Read the optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(opts.ConfigDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 3. Read environment variables with the KANBAN_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	// 4. Overlay the .env file for keys the process environment leaves unset
	if err := applyDotEnv(v, opts.DotEnvFile); err != nil {
		return nil, err
	}

	// 5. Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate config
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDotEnv reads KEY=VALUE pairs from path and sets the matching keys on v.
// A missing file is not an error.
func applyDotEnv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error checking env file %s: %w", path, err)
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}

	for _, key := range keys {
		name := EnvVarName(key)
		if value, ok := os.LookupEnv(name); ok && value != "" {
			continue
		}
		// viper lowercases keys read from env files
		if dotenv.IsSet(strings.ToLower(name)) {
			v.Set(key, dotenv.Get(strings.ToLower(name)))
		}
	}
	return nil
}

// EnvVarName returns the environment variable that overrides key,
// e.g. "auth.jwt_secret" becomes "KANBAN_AUTH_JWT_SECRET".
func EnvVarName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
