package config

import "strings"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Realtime RealtimeConfig `mapstructure:"realtime" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// StaticDir, when set, is served at the root path.
	StaticDir string `mapstructure:"static_dir"`
	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string `mapstructure:"cors_origins"`
}

// AllowedOrigins splits CORSOrigins into trimmed, non-empty entries.
func (s ServerConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                        validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"             validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"             validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"  validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,min=1,max=1440"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"min=4,max=31"`
}

// RealtimeConfig contains settings for the WebSocket gateway.
type RealtimeConfig struct {
	// SendBuffer is the number of outbound frames queued per session before
	// the session is considered too slow and dropped.
	SendBuffer int `mapstructure:"send_buffer" validate:"gt=0"`
}
