package session_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/pkg/logger"
	"github.com/dmitrymomot/webstarter/pkg/session"
)

func TestUserIDFromContext(t *testing.T) {
	t.Parallel()

	_, ok := session.UserIDFromContext(context.Background())
	assert.False(t, ok)

	sess := session.Restore("sid", nil, time.Now(), time.Now().Add(time.Hour))
	ctx := session.WithSession(context.Background(), sess)
	_, ok = session.UserIDFromContext(ctx)
	assert.False(t, ok, "anonymous session")

	sess.SetUserID("admin")
	id, ok := session.UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", id)

	assert.Panics(t, func() { session.MustFromContext(context.Background()) })
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(session.LoggerExtractor()))

	sess := session.Restore("secret-session-id", nil, time.Now(), time.Now().Add(time.Hour))
	sess.SetUserID("admin")
	log.InfoContext(session.WithSession(context.Background(), sess), "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "admin", entry["user_id"])
	assert.NotContains(t, buf.String(), "secret-session-id")
}
