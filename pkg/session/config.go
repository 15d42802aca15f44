package session

import "time"

// DefaultMaxAge is the absolute session lifetime.
const DefaultMaxAge = 12 * time.Hour

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// MaxAge is both the record lifetime and the cookie Max-Age. Expiry is
	// absolute from creation and is not extended by later saves.
	MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"12h"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:    "sid",
		MaxAge:        DefaultMaxAge,
		SecureCookies: false,
	}
}
