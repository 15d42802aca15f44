package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrStoreUnreachable             = errors.New("redis: session store unreachable")
	ErrCorruptSession               = errors.New("redis: stored session is not valid JSON")
)
