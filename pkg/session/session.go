package session

import (
	"maps"
	"time"
)

// UserKey is the data key holding the opaque reference to the signed-in user.
const UserKey = "user"

// State describes where a session is in its lifecycle.
type State int

const (
	// StateUninitialized is a fresh session nobody has written to. It is
	// never persisted and no cookie is issued for it.
	StateUninitialized State = iota
	// StateActive is a session with changes not yet persisted.
	StateActive
	// StateSaved is a persisted session without pending changes.
	StateSaved
	// StateExpired is a session whose absolute lifetime has ended.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateSaved:
		return "saved"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Session is the server-side state bound to a client through the session
// cookie. A Session value belongs to a single request and is not safe for
// concurrent use.
type Session struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`

	isNew     bool
	modified  bool
	destroyed bool
}

// Restore rebuilds a persisted session. Used by Store implementations.
func Restore(id string, data map[string]any, createdAt, expiresAt time.Time) *Session {
	if data == nil {
		data = make(map[string]any)
	}
	return &Session{
		ID:        id,
		Data:      data,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
}

// Clone returns a copy with its own top-level data map.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Data = maps.Clone(s.Data)
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	return &c
}

// IsNew reports whether the session has never been persisted.
func (s *Session) IsNew() bool {
	return s != nil && s.isNew
}

// Modified reports whether the session has unsaved changes.
func (s *Session) Modified() bool {
	return s != nil && s.modified && !s.destroyed
}

// IsExpiredAt reports whether the session is expired at t. The boundary is
// inclusive: a session presented exactly at ExpiresAt is expired.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return s != nil && !t.Before(s.ExpiresAt)
}

// State reports the lifecycle state at t.
func (s *Session) State(t time.Time) State {
	switch {
	case s == nil, s.destroyed, s.isNew && !s.modified:
		return StateUninitialized
	case s.IsExpiredAt(t) && !s.isNew:
		return StateExpired
	case s.modified:
		return StateActive
	default:
		return StateSaved
	}
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from session data. Numbers decoded from
// JSON or BSON arrive as float64, int32 or int64 and are converted.
func (s *Session) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Set stores a value in session data and marks the session modified.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
	s.modified = true
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	if _, ok := s.Data[key]; !ok {
		return
	}
	delete(s.Data, key)
	s.modified = true
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil || len(s.Data) == 0 {
		return
	}
	s.Data = make(map[string]any)
	s.modified = true
}

// UserID returns the signed-in user reference, if any.
func (s *Session) UserID() (string, bool) {
	id, ok := s.GetString(UserKey)
	return id, ok && id != ""
}

// SetUserID records the signed-in user reference.
func (s *Session) SetUserID(id string) {
	s.Set(UserKey, id)
}

// IsAuthenticated reports whether a user reference is present.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.UserID()
	return ok
}
