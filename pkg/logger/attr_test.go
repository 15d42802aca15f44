package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.Any().(error).Error())
}

func TestSessionID(t *testing.T) {
	assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	assert.Equal(t, "abc", logger.SessionID("abc").Value.String())
	assert.Equal(t, "abcdefgh", logger.SessionID("abcdefghijklmnop").Value.String())
}

func TestRequestID(t *testing.T) {
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	attr := logger.RequestID("req-1")
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())
}
