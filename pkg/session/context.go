package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/webstarter/pkg/logger"
)

type sessionContextKey struct{}

// WithSession stores the request's session in ctx. Middleware does this
// after Load.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok && sess != nil
}

// MustFromContext is for handlers mounted behind Middleware only.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context, is session middleware mounted?")
	}
	return sess
}

// UserIDFromContext returns the user reference of the request's session.
func UserIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.UserID()
}

// LoggerExtractor adds user_id to records logged while handling a request
// of a logged-in session. The session id itself is never logged.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := UserIDFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.UserID(id), true
	}
}
