package session

import "context"

// Store persists session records keyed by session id. Implementations must
// be safe for concurrent use.
type Store interface {
	// Get returns the record or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Put creates or replaces the record.
	Put(ctx context.Context, session *Session) error

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error
}
