package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/webstarter/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig sets custom configuration. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		if cfg.CookieName != "" {
			m.config.CookieName = cfg.CookieName
		}
		if cfg.MaxAge > 0 {
			m.config.MaxAge = cfg.MaxAge
		}
		m.config.SecureCookies = cfg.SecureCookies
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithMaxAge sets the absolute session lifetime
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		m.config.MaxAge = d
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithCookieManager sets the cookie manager used by the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
	}
}

// WithLogger sets the logger used for load and save diagnostics
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// WithErrorHandler sets the responder used when the session cannot be
// loaded or saved by Middleware
func WithErrorHandler(h func(http.ResponseWriter, *http.Request, error)) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
