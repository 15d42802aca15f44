package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/webstarter/pkg/session"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := bson.D{
		{Key: "name", Value: "alice"},
		{Key: "tags", Value: bson.A{"a", bson.D{{Key: "x", Value: int32(1)}}}},
		{Key: "prefs", Value: bson.M{"theme": "dark", "list": bson.A{int64(2)}}},
	}

	got := normalize(in)
	assert.Equal(t, map[string]any{
		"name": "alice",
		"tags": []any{"a", map[string]any{"x": int32(1)}},
		"prefs": map[string]any{
			"theme": "dark",
			"list":  []any{int64(2)},
		},
	}, got)
}

func TestDocumentMapping(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	sess := session.Restore("abc", map[string]any{"user": "admin"}, created, created.Add(12*time.Hour))

	doc := toDocument(sess)
	assert.Equal(t, "abc", doc.ID)
	assert.Equal(t, created.Truncate(time.Millisecond), doc.CreatedAt)
	assert.Equal(t, created.Add(12*time.Hour).Truncate(time.Millisecond), doc.ExpiresAt)

	doc.Data = map[string]any{"user": "admin", "cart": bson.A{"x"}}
	back := fromDocument(doc)
	assert.Equal(t, "abc", back.ID)
	assert.False(t, back.Modified())
	assert.Equal(t, []any{"x"}, back.Data["cart"])

	user, ok := back.UserID()
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
}

func TestDocumentBSONRoundTrip(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sess := session.Restore("abc", map[string]any{
		"user":  "admin",
		"prefs": map[string]any{"theme": "dark"},
	}, created, created.Add(12*time.Hour))

	raw, err := bson.Marshal(toDocument(sess))
	require.NoError(t, err)

	var doc sessionDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	back := fromDocument(doc)
	assert.Equal(t, map[string]any{"theme": "dark"}, back.Data["prefs"])
	assert.True(t, back.ExpiresAt.Equal(sess.ExpiresAt))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Config{}.Validate(), ErrEmptyConnectionURL)
	assert.NoError(t, Config{ConnectionURL: "mongodb://localhost:27017"}.Validate())
}

func TestNew_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrEmptyConnectionURL)
}

// TestSessionStore_Integration runs against a live server when MONGO_TEST_URI is set.
func TestSessionStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := New(ctx, Config{
		ConnectionURL:  uri,
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    5,
		RetryAttempts:  1,
	})
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database("webstarter_test")
	defer func() { _ = db.Drop(context.Background()) }()

	store := NewSessionStore(db, "")
	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.EnsureIndexes(ctx))

	now := time.Now().UTC().Truncate(time.Millisecond)
	sess := session.Restore("integration", map[string]any{"user": "admin"}, now, now.Add(12*time.Hour))
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "integration")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Data["user"])
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))

	sess.Set("user", "bob")
	require.NoError(t, store.Put(ctx, sess))
	got, err = store.Get(ctx, "integration")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Data["user"])

	require.NoError(t, store.Delete(ctx, "integration"))
	require.NoError(t, store.Delete(ctx, "integration"))

	_, err = store.Get(ctx, "integration")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
