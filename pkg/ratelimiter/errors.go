package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("ratelimiter.invalid_config")

	// ErrInvalidTokenCount indicates that the requested token count is invalid.
	ErrInvalidTokenCount = errors.New("ratelimiter.invalid_token_count")

	// ErrLimitExceeded is passed to the middleware error handler when a
	// request is rejected.
	ErrLimitExceeded = errors.New("rate limit exceeded")
)
