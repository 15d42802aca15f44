package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/webstarter/pkg/cookie"
	"github.com/dmitrymomot/webstarter/pkg/logger"
)

// Manager loads and saves sessions around each request
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	logger        *slog.Logger
	errorHandler  func(http.ResponseWriter, *http.Request, error)
	now           func() time.Time
}

// New creates a session manager backed by store.
// Panics when store is nil or when neither a transport nor a cookie manager
// is configured.
func New(store Store, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}

	m := &Manager{
		store:  store,
		config: DefaultConfig(),
		logger: logger.Discard(),
		now:    time.Now,
		errorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "internal_server_error", http.StatusInternalServerError)
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies)
	}

	return m
}

// Config returns the effective configuration
func (m *Manager) Config() Config {
	return m.config
}

// Load returns the session referenced by the request. A missing, badly
// signed, unknown or expired id yields a fresh uninitialized session and a
// nil error. Only store failures are returned as errors.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.DebugContext(ctx, "ignoring unverifiable session token",
				logger.Component("session"),
				logger.Error(err),
			)
		}
		return m.fresh()
	}

	sess, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return m.fresh()
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	if sess.IsExpiredAt(m.now()) {
		m.logger.DebugContext(ctx, "session expired",
			logger.Component("session"),
			logger.SessionID(sess.ID),
		)
		return m.fresh()
	}

	sess.isNew = false
	sess.modified = false
	sess.destroyed = false
	return sess, nil
}

// Save persists the session if it was created or changed during the
// request and issues the cookie for newly created sessions. Unchanged
// sessions are not written, so their expiry never moves.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if !sess.Modified() {
		return nil
	}

	if sess.isNew {
		now := m.now()
		sess.CreatedAt = now
		sess.ExpiresAt = now.Add(m.config.MaxAge)
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	if sess.isNew {
		if err := m.IssueCookie(w, sess.ID); err != nil {
			return err
		}
	}

	sess.isNew = false
	sess.modified = false
	return nil
}

// IssueCookie sets the session cookie with the fixed MaxAge.
func (m *Manager) IssueCookie(w http.ResponseWriter, id string) error {
	return m.transport.SetToken(w, id, m.config.MaxAge)
}

// Regenerate moves the session data to a new id and discards the old
// record. Call it when privileges change, e.g. on login, so a session id
// planted before authentication is worthless afterwards.
func (m *Manager) Regenerate(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrInvalidSession
	}

	if !sess.isNew {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}
	}

	id, err := generateID()
	if err != nil {
		return err
	}

	now := m.now()
	sess.ID = id
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(m.config.MaxAge)
	sess.isNew = true
	sess.modified = true
	sess.destroyed = false
	return nil
}

// Destroy deletes the record, expires the cookie and empties the session.
// A destroyed session is never saved again during the request.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return ErrInvalidSession
	}

	if !sess.isNew {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}
	}

	sess.Data = make(map[string]any)
	sess.modified = false
	sess.destroyed = true

	return m.transport.ClearToken(w)
}

func (m *Manager) fresh() (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}
	now := m.now()
	return &Session{
		ID:        id,
		Data:      make(map[string]any),
		CreatedAt: now,
		ExpiresAt: now.Add(m.config.MaxAge),
		isNew:     true,
	}, nil
}

// generateID returns 32 random bytes, base64url encoded.
func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
