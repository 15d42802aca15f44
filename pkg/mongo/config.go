package mongo

import "time"

// Config represents the configuration for the database.
type Config struct {
	ConnectionURL      string        `env:"MONGO_URI"`                                  // ConnectionURL is the URL of the database. Required when sessions are stored in MongoDB.
	Database           string        `env:"MONGO_DATABASE" envDefault:"app"`            // Database is the database holding application collections.
	SessionsCollection string        `env:"MONGO_SESSIONS_COLLECTION" envDefault:"sessions"`
	ConnectTimeout     time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize        uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize        uint64        `env:"MONGO_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime    time.Duration `env:"MONGO_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is the maximum time that a connection can remain idle in the connection pool.
	RetryWrites        bool          `env:"MONGO_RETRY_WRITES" envDefault:"true"`       // RetryWrites specifies whether to retry write operations.
	RetryReads         bool          `env:"MONGO_RETRY_READS" envDefault:"true"`        // RetryReads specifies whether to retry read operations.
	RetryAttempts      int           `env:"MONGO_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of retry attempts to connect to the database.
	RetryInterval      time.Duration `env:"MONGO_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the interval between retry attempts.
}

// Validate reports a missing connection URL.
func (c Config) Validate() error {
	if c.ConnectionURL == "" {
		return ErrEmptyConnectionURL
	}
	return nil
}
