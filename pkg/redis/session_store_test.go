package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/pkg/redis"
	"github.com/dmitrymomot/webstarter/pkg/session"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_PutGetDelete(t *testing.T) {
	t.Parallel()

	mr, client := setupRedis(t)
	store := redis.NewSessionStore(client, "")
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	sess := session.Restore("abc", map[string]any{"user": "admin", "n": 3}, now, now.Add(12*time.Hour))
	require.NoError(t, store.Put(ctx, sess))

	assert.True(t, mr.Exists("session:abc"))
	ttl := mr.TTL("session:abc")
	assert.InDelta(t, (12 * time.Hour).Seconds(), ttl.Seconds(), 5)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.True(t, got.ExpiresAt.Equal(now.Add(12*time.Hour)))
	user, _ := got.UserID()
	assert.Equal(t, "admin", user)
	n, ok := got.GetInt("n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, "abc"))
}

func TestSessionStore_ExpiredRecordIsNotWritten(t *testing.T) {
	t.Parallel()

	mr, client := setupRedis(t)
	store := redis.NewSessionStore(client, "app:")
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Put(ctx, session.Restore("old", nil, now.Add(-13*time.Hour), now.Add(-time.Hour))))
	assert.False(t, mr.Exists("app:old"))
}

func TestSessionStore_KeyExpiresWithSession(t *testing.T) {
	t.Parallel()

	mr, client := setupRedis(t)
	store := redis.NewSessionStore(client, "")
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, store.Put(ctx, session.Restore("abc", nil, now, now.Add(time.Hour))))

	mr.FastForward(time.Hour + time.Second)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionStore_CorruptValue(t *testing.T) {
	t.Parallel()

	mr, client := setupRedis(t)
	store := redis.NewSessionStore(client, "")

	require.NoError(t, mr.Set("session:bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, redis.ErrCorruptSession)
}

func TestSessionStore_Unavailable(t *testing.T) {
	t.Parallel()

	mr, client := setupRedis(t)
	store := redis.NewSessionStore(client, "")
	mr.Close()

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrSessionNotFound)
}

func TestConnectAndPing(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  "redis://" + mr.Addr() + "/0",
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	store := redis.NewSessionStore(client, "")
	assert.NoError(t, store.Ping(ctx))

	mr.Close()
	assert.ErrorIs(t, store.Ping(ctx), redis.ErrStoreUnreachable)
}

func TestConnect_Errors(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "not-a-url"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
