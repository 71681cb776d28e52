// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Catalog   CatalogConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Cache     CacheConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 45s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"45s"`
}

// SourceConfig holds settings for fetching the published spreadsheet.
type SourceConfig struct {
	// BaseURL is the CSV publish URL; "&gid=<sheet>" is appended per sheet
	BaseURL string `env:"SHEETS_BASE_URL" default:"https://docs.google.com/spreadsheets/d/e/2PACX-1vRWKnx70tXlapgtJsR4rw9WLeQlksXAaXCQzZP1RBh9G7H9lQK4rt0ga9DaJkV28F7q8GDgkRZM3Arj/pub?output=csv"`

	// Timeout bounds a single sheet fetch (default: 20s)
	Timeout time.Duration `env:"SHEETS_TIMEOUT" default:"20s"`

	// MaxBytes caps the size of one sheet body (default: 10MB)
	MaxBytes int64 `env:"SHEETS_MAX_BYTES" default:"10485760"`

	UserAgent string `env:"SHEETS_USER_AGENT" default:"kazandelikates-catalog/2.1"`
}

// CatalogConfig holds catalog build and public URL settings.
type CatalogConfig struct {
	// APIURL is the public base URL of this service
	APIURL string `env:"CATALOG_API_URL" default:"https://api.pepperoni.tatar"`

	// SiteURL is the storefront linked from every offer
	SiteURL string `env:"CATALOG_SITE_URL" default:"https://pepperoni.tatar"`

	// MaxConcurrentBuilds limits parallel catalog builds (default: 4)
	MaxConcurrentBuilds int `env:"CATALOG_MAX_CONCURRENT_BUILDS" default:"4"`

	// BuildWait is how long a request waits for a build slot (default: 10s)
	BuildWait time.Duration `env:"CATALOG_BUILD_WAIT" default:"10s"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// ExportLimit is requests per minute for export endpoints (default: 20)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigin is the CORS origin for /api responses (default: *)
	AllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// CacheConfig holds the optional HTTP response cache settings.
type CacheConfig struct {
	// RedisURL enables the response cache when set, e.g. redis://localhost:6379/0
	RedisURL string `env:"REDIS_URL" envAlt:"CACHE_REDIS_URL"`

	// TTL is how long a cached response is served (default: 1h)
	TTL time.Duration `env:"CACHE_TTL" default:"1h"`
}

// AnalyticsConfig holds visit log settings.
type AnalyticsConfig struct {
	// VisitLogSize is the capacity of the in-memory visit ring buffer (default: 500)
	VisitLogSize int `env:"VISIT_LOG_SIZE" default:"500"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
