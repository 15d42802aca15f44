package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/webstarter/pkg/logger"
	"github.com/dmitrymomot/webstarter/pkg/mongo"
	"github.com/dmitrymomot/webstarter/pkg/redis"
	"github.com/dmitrymomot/webstarter/pkg/session"
)

// memoryCleanupInterval is how often the in-memory store drops expired records.
const memoryCleanupInterval = time.Minute

// Backend is an opened session store together with its readiness check.
type Backend struct {
	Store session.Store
	Check func(context.Context) error
	Close func(context.Context) error
}

// OpenStore connects the session back-end selected by cfg.SessionStore.
func OpenStore(ctx context.Context, cfg Config, log *slog.Logger) (*Backend, error) {
	switch cfg.SessionStore {
	case StoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		store := redis.NewSessionStore(client, cfg.Redis.KeyPrefix)
		log.InfoContext(ctx, "session store connected", logger.Component("app"), slog.String("store", StoreRedis))
		return &Backend{
			Store: store,
			Check: store.Ping,
			Close: func(context.Context) error { return client.Close() },
		}, nil

	case StoreMemory:
		store := session.NewMemoryStore(memoryCleanupInterval)
		log.WarnContext(ctx, "using in-memory session store, sessions are lost on restart", logger.Component("app"))
		return &Backend{
			Store: store,
			Check: func(context.Context) error { return nil },
			Close: func(context.Context) error { return store.Close() },
		}, nil

	case StoreMongo:
		client, err := mongo.New(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store := mongo.NewSessionStore(client.Database(cfg.Mongo.Database), cfg.Mongo.SessionsCollection)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.InfoContext(ctx, "session store connected", logger.Component("app"), slog.String("store", StoreMongo))
		return &Backend{
			Store: store,
			Check: store.Ping,
			Close: client.Disconnect,
		}, nil

	default:
		return nil, ErrUnknownSessionStore
	}
}
