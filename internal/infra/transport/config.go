package transport

import (
	"fmt"
	"time"

	pkgconfig "spot-board/pkg/config"
)

// Config holds the configuration for endpoint fetch operations.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type Config struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Responses exceeding this limit are rejected to prevent memory exhaustion.
	// This is enforced during response reading, not based on Content-Length header.
	// Default: 5242880 (5MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated for security.
	// Default: 5
	MaxRedirects int

	// UserAgent is sent on every request to identify this client.
	// Default: "SpotBoard/1.0"
	UserAgent string

	// DenyPrivateIPs controls whether to block endpoints resolving to
	// private IP addresses. Should always be true in production.
	// Default: true
	DenyPrivateIPs bool
}

// DefaultConfig returns the default configuration for endpoint fetches.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1024 * 1024, // 5MB
		MaxRedirects:   5,
		UserAgent:      "SpotBoard/1.0",
		DenyPrivateIPs: true,
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *Config) Validate() error {
	if err := pkgconfig.ValidateDurationRange(c.Timeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	minBodySize := int64(1024)             // 1KB
	maxBodySize := int64(50 * 1024 * 1024) // 50MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// If a variable is not set or invalid, the default value is used.
// After loading, the configuration is validated.
//
// Environment variables:
//   - TRANSPORT_TIMEOUT: duration string, e.g. "10s" (default: 10s)
//   - TRANSPORT_MAX_BODY_SIZE: integer in bytes (default: 5242880)
//   - TRANSPORT_MAX_REDIRECTS: integer (default: 5)
//   - TRANSPORT_USER_AGENT: string (default: "SpotBoard/1.0")
//   - TRANSPORT_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Timeout = pkgconfig.GetEnvDuration("TRANSPORT_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(pkgconfig.GetEnvInt("TRANSPORT_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = pkgconfig.GetEnvInt("TRANSPORT_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.UserAgent = pkgconfig.GetEnvString("TRANSPORT_USER_AGENT", cfg.UserAgent)
	cfg.DenyPrivateIPs = pkgconfig.GetEnvBool("TRANSPORT_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
