// Package mongo provides MongoDB connection management and a MongoDB backed
// session store.
//
// New connects with retries and only returns a client that answered a ping.
// SessionStore keeps one document per session in the sessions collection:
//
//	{ _id: <session id>, data: {...}, created_at: <date>, expires_at: <date> }
//
// EnsureIndexes creates a TTL index on expires_at so the server removes
// expired documents without application involvement. The session manager
// still checks expiry on every load, because TTL cleanup runs periodically.
// Ping checks the primary for the readiness check.
//
// # Usage
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	store := mongo.NewSessionStore(client.Database(cfg.Database), cfg.SessionsCollection)
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// Nested values read back from the database are plain map[string]any and
// []any, never bson.D or bson.A.
package mongo
