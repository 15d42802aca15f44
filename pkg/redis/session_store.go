package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/webstarter/pkg/session"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "session:"

// SessionStore keeps each session as a JSON string under <prefix><id>. The
// key TTL equals the remaining lifetime, so Redis evicts expired sessions.
type SessionStore struct {
	db     redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore wraps a connected client. An empty prefix means DefaultKeyPrefix.
func NewSessionStore(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionStore{db: client, prefix: prefix, now: time.Now}
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

// Ping reports whether the server holding the session keys answers.
func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrStoreUnreachable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := s.db.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}

	var rec session.Session
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Join(ErrCorruptSession, err)
	}
	return session.Restore(rec.ID, rec.Data, rec.CreatedAt, rec.ExpiresAt), nil
}

// Put writes the record. A record already past its expiry is deleted instead.
func (s *SessionStore) Put(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return session.ErrInvalidSession
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Set(ctx, s.key(sess.ID), raw, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.db.Del(ctx, s.key(id)).Err()
}
