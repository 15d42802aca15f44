package app

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/webstarter/internal/auth"
	"github.com/dmitrymomot/webstarter/pkg/clientip"
	"github.com/dmitrymomot/webstarter/pkg/cookie"
	"github.com/dmitrymomot/webstarter/pkg/environment"
	"github.com/dmitrymomot/webstarter/pkg/httpserver"
	"github.com/dmitrymomot/webstarter/pkg/mongo"
	"github.com/dmitrymomot/webstarter/pkg/ratelimiter"
	"github.com/dmitrymomot/webstarter/pkg/redis"
	"github.com/dmitrymomot/webstarter/pkg/session"
)

// Session back-ends selectable with SESSION_STORE.
const (
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

var (
	ErrUnknownSessionStore = errors.New("app.unknown_session_store")
	ErrMissingMongoURI     = errors.New("app.missing_mongo_uri")
)

// Config is the process configuration, read from the environment.
type Config struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Name         string `env:"APP_NAME" envDefault:"webstarter"`
	SecretKey    string `env:"SECRET_KEY,required"`
	SessionStore string `env:"SESSION_STORE" envDefault:"mongo"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"web/static"`
	ViewsDir     string `env:"VIEWS_DIR" envDefault:"web/views"`

	// CORSOrigins restricts credentialed cross-origin access. Empty reflects
	// every origin.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	HTTP           httpserver.Config
	Mongo          mongo.Config
	Redis          redis.Config
	Session        session.Config
	Auth           auth.Config
	ClientIP       clientip.Config
	LoginRateLimit ratelimiter.Config
}

// Validate checks the cross-field rules env tags cannot express.
func (c Config) Validate() error {
	switch c.SessionStore {
	case StoreMongo:
		if err := c.Mongo.Validate(); err != nil {
			return errors.Join(ErrMissingMongoURI, err)
		}
	case StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSessionStore, c.SessionStore)
	}

	if err := c.LoginRateLimit.Validate(); err != nil {
		return err
	}

	if _, err := cookie.New(c.Secrets()); err != nil {
		return err
	}
	return nil
}

// Secrets splits SECRET_KEY into signing keys, newest first.
func (c Config) Secrets() []string {
	return cookie.ParseSecrets(c.SecretKey)
}

// Environment returns the parsed APP_ENV.
func (c Config) Environment() environment.Environment {
	return environment.Parse(c.Env)
}
