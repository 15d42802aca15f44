package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrStoreUnreachable       = errors.New("mongo: session store unreachable")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection URL")
)
