package server

import (
	"time"

	"github.com/fulexo/platform/internal/ratelimit"
	"github.com/fulexo/platform/internal/tracing"
)

type Config struct {
	Name     string `conf:"name" yaml:"name" json:"name"`
	Host     string `conf:"host" yaml:"host" json:"host"`
	Port     int    `conf:"port" yaml:"port" json:"port"`
	BasePath string `conf:"base_path" yaml:"base_path" json:"base_path"`

	ReadTimeout time.Duration `conf:"read_timeout" yaml:"read_timeout" json:"read_timeout"`

	// RequestTimeout is the maximum duration for processing a request.
	RequestTimeout time.Duration `conf:"request_timeout" yaml:"request_timeout" json:"request_timeout"`

	// SyncTimeout is the maximum duration for requests that trigger a
	// synchronous WooCommerce round trip.
	SyncTimeout time.Duration `conf:"sync_timeout" yaml:"sync_timeout" json:"sync_timeout"`

	Trace tracing.Config `conf:"trace" yaml:"trace" json:"trace"`

	Debug bool       `conf:"debug" yaml:"debug" json:"debug"`
	CORS  CORS       `conf:"cors" yaml:"cors" json:"cors"`
	Auth  Auth       `conf:"auth" yaml:"auth" json:"auth"`
	Rates RateLimits `conf:"rates" yaml:"rates" json:"rates"`
}

type CORS struct {
	Enabled          bool          `conf:"enabled" yaml:"enabled" json:"enabled"`
	AllowedOrigins   []string      `conf:"allowed_origins" yaml:"allowed_origins" json:"allowed_origins"`
	AllowedMethods   []string      `conf:"allowed_methods" yaml:"allowed_methods" json:"allowed_methods"`
	AllowedHeaders   []string      `conf:"allowed_headers" yaml:"allowed_headers" json:"allowed_headers"`
	ExposedHeaders   []string      `conf:"exposed_headers" yaml:"exposed_headers" json:"exposed_headers"`
	AllowCredentials bool          `conf:"allow_credentials" yaml:"allow_credentials" json:"allow_credentials"`
	MaxAge           time.Duration `conf:"max_age" yaml:"max_age" json:"max_age"`
}

type Auth struct {
	// TokenTTL bounds the lifetime of issued session tokens.
	TokenTTL time.Duration `conf:"token_ttl" yaml:"token_ttl" json:"token_ttl"`

	// CookieName is the session cookie checked when no Authorization
	// header is present.
	CookieName string `conf:"cookie_name" yaml:"cookie_name" json:"cookie_name"`

	CookieSecure bool `conf:"cookie_secure" yaml:"cookie_secure" json:"cookie_secure"`

	// EncryptionSecret protects store credentials at rest.
	EncryptionSecret string `conf:"encryption_secret" yaml:"encryption_secret" json:"encryption_secret"`
}

// RateLimits holds the statically declared limits per route class.
type RateLimits struct {
	// Default applies to authenticated API routes.
	Default ratelimit.Config `conf:"default" yaml:"default" json:"default"`

	// Auth applies to credential endpoints, which get a much tighter
	// window.
	Auth ratelimit.Config `conf:"auth" yaml:"auth" json:"auth"`
}

// WithDefaults fills unset fields with production defaults.
func (c Config) WithDefaults() Config {
	if c.Name == "" {
		c.Name = "fulexo"
	}

	if c.Port == 0 {
		c.Port = 8080
	}

	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 30 * time.Second
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}

	if c.SyncTimeout <= 0 {
		c.SyncTimeout = 2 * time.Minute
	}

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 7 * 24 * time.Hour
	}

	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "fulexo_token"
	}

	if c.Rates.Default.Limit == 0 {
		c.Rates.Default = ratelimit.Config{Limit: 100, TTL: time.Minute}
	}

	if c.Rates.Auth.Limit == 0 {
		c.Rates.Auth = ratelimit.Config{Limit: 5, TTL: time.Minute}
	}

	return c
}
