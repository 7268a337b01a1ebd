package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
const EnvPrefix = "TASKBOARD"

// dotenvFile is loaded into the process environment when present. Variables
// that are already set win over the file.
const dotenvFile = ".env"

// bindings lists every configuration key together with any un-prefixed
// environment aliases accepted for compatibility with common deployments.
var bindings = map[string][]string{
	"server.port":                        {"PORT"},
	"server.log_level":                   nil,
	"server.static_dir":                  nil,
	"server.cors_origins":                nil,
	"database.url":                       {"DATABASE_URL"},
	"database.max_open_conns":            nil,
	"database.max_idle_conns":            nil,
	"database.conn_max_lifetime_minutes": nil,
	"auth.jwt_secret":                    {"JWT_SECRET"},
	"auth.token_lifetime_minutes":        nil,
	"auth.bcrypt_cost":                   nil,
	"realtime.send_buffer":               nil,
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(dotenvFile); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenvFile, err)
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
	for key, aliases := range bindings {
		envNames := append([]string{envName(key)}, aliases...)
		if err := v.BindEnv(append([]string{key}, envNames...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("realtime.send_buffer", 64)
}

// envName returns the prefixed environment variable name for a config key,
// e.g. "auth.jwt_secret" -> "TASKBOARD_AUTH_JWT_SECRET".
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
