package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/webstarter/pkg/logger"
)

// Authenticator verifies credentials and returns the opaque user reference
// stored in the session.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// Config holds the credential list.
type Config struct {
	// Users is a comma separated list of username:bcrypt-hash pairs.
	Users string `env:"AUTH_USERS"`
}

// ParseUsers parses "alice:$2a$10$...,bob:$2a$10$..." into a username to hash map.
func ParseUsers(raw string) (map[string][]byte, error) {
	users := make(map[string][]byte)
	for entry := range strings.SplitSeq(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, hash, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		hash = strings.TrimSpace(hash)
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("%w: entry %q must be user:hash", ErrInvalidUsersList, entry)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%w: user %q: %v", ErrInvalidUsersList, name, err)
		}
		users[name] = []byte(hash)
	}
	return users, nil
}

// HashPassword returns a bcrypt hash suitable for AUTH_USERS.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// StaticAuthenticator checks credentials against a fixed user list.
type StaticAuthenticator struct {
	users  map[string][]byte
	dummy  []byte
	logger *slog.Logger
}

// StaticOption configures a StaticAuthenticator.
type StaticOption func(*StaticAuthenticator)

// WithLogger sets the logger for failed attempts.
func WithLogger(log *slog.Logger) StaticOption {
	return func(a *StaticAuthenticator) {
		if log != nil {
			a.logger = log
		}
	}
}

// NewStaticAuthenticator builds an authenticator from cfg.Users.
func NewStaticAuthenticator(cfg Config, opts ...StaticOption) (*StaticAuthenticator, error) {
	users, err := ParseUsers(cfg.Users)
	if err != nil {
		return nil, err
	}

	// Compared against for unknown users so response time does not reveal
	// them; it must cost as much as the most expensive real hash.
	cost := bcrypt.DefaultCost
	if len(users) > 0 {
		cost = bcrypt.MinCost
		for _, hash := range users {
			if c, _ := bcrypt.Cost(hash); c > cost {
				cost = c
			}
		}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("webstarter-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &StaticAuthenticator{
		users:  users,
		dummy:  dummy,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Len returns the number of configured users.
func (a *StaticAuthenticator) Len() int {
	return len(a.users)
}

func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	hash, ok := a.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(a.dummy, []byte(password))
		a.logger.InfoContext(ctx, "login failed", logger.Component("auth"), slog.String("reason", "unknown_user"))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		a.logger.InfoContext(ctx, "login failed", logger.Component("auth"), logger.UserID(username), slog.String("reason", "bad_password"))
		return "", ErrInvalidCredentials
	}

	return username, nil
}
