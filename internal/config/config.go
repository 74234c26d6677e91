// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; required for the server and migrator.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// RedisAddr is the Redis address for the challenge store (e.g. localhost:6379).
	// When empty the server falls back to the in-process memory store.
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	// RedisPassword is the optional Redis password.
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	// JWTSecret is the symmetric signing key for access tokens; at least 32 bytes.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// TokenTTL is the access token lifetime (e.g. "10m").
	TokenTTL string `mapstructure:"TOKEN_TTL"`
	// AuthNumberTTLMillis is the authentication number lifetime in milliseconds.
	AuthNumberTTLMillis int64 `mapstructure:"AUTH_NUMBER_TTL_MS"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// SMSAPIKey is the SMS gateway API key. When empty the server logs
	// notifications instead of sending them.
	SMSAPIKey string `mapstructure:"SMS_API_KEY"`
	// SMSBaseURL is the SMS gateway API base URL.
	SMSBaseURL string `mapstructure:"SMS_BASE_URL"`
	// SMSSender is the optional sender ID.
	SMSSender string `mapstructure:"SMS_SENDER"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "10m")
	v.SetDefault("AUTH_NUMBER_TTL_MS", 180000)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("SMS_API_KEY", "")
	v.SetDefault("SMS_BASE_URL", "https://app.smslocal.in/api/smsapi")
	v.SetDefault("SMS_SENDER", "")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("config: JWT_SECRET must be at least 32 bytes")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.AuthNumberTTLMillis <= 0 {
		return nil, errors.New("config: AUTH_NUMBER_TTL_MS must be positive")
	}

	return &cfg, nil
}

// AccessTokenTTL parses TokenTTL as a time.Duration. Returns 10m if unset or invalid.
func (c *Config) AccessTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// AuthNumberTTL returns the authentication number lifetime.
func (c *Config) AuthNumberTTL() time.Duration {
	return time.Duration(c.AuthNumberTTLMillis) * time.Millisecond
}
