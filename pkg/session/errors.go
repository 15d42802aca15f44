package session

import "errors"

var (
	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates a session without an id was passed to a store
	ErrInvalidSession = errors.New("session.invalid")

	// ErrStoreUnavailable wraps store failures during load or save
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrTokenGeneration indicates token generation failed
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrSaveFailed is returned by writes after the session could not be saved
	ErrSaveFailed = errors.New("session.save_failed")
)
