// Package config loads BaseHub's service configuration from defaults, a
// YAML config file, environment variables, and CLI flags, in ascending
// precedence.
package config

import "time"

// Config is the fully resolved service configuration.
type Config struct {
	// Port the HTTP API listens on.
	Port int `koanf:"port"`

	// JWTSecret signs guest session tokens. Required to serve.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is how long minted sessions stay valid.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// SessionSecret keys the HTTP cookie session store. Required to serve.
	SessionSecret string `koanf:"session_secret"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}
