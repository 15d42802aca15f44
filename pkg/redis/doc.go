// Package redis provides helpers for connecting to a Redis server and a
// Redis backed session store.
//
// Connect retries the connection using the supplied configuration and only
// returns a client that answered PING. SessionStore.Ping backs the readiness
// check.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStore(client, cfg.KeyPrefix)
//
// Sessions are stored as JSON. Numbers inside session data come back as
// float64, as with any JSON decoding.
package redis
