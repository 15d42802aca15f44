package session

import (
	"net/http"

	"github.com/dmitrymomot/webstarter/pkg/logger"
)

// Middleware loads the session, attaches it to the request context and saves
// it right before the first byte of the response is written (or when the
// handler returns without writing). Changes made after the response started
// are not persisted.
//
// A store failure while loading ends the request with the configured error
// handler. A failure while saving replaces the response with the error
// handler's output; writes from the handler are then discarded.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := m.Load(ctx, r)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to load session",
				logger.Component("session"),
				logger.Error(err),
			)
			m.errorHandler(w, r, err)
			return
		}

		cw := &commitWriter{ResponseWriter: w}
		cw.commit = func() bool {
			if err := m.Save(ctx, w, sess); err != nil {
				m.logger.ErrorContext(ctx, "failed to save session",
					logger.Component("session"),
					logger.SessionID(sess.ID),
					logger.Error(err),
				)
				m.errorHandler(w, r, err)
				return false
			}
			return true
		}

		next.ServeHTTP(cw, r.WithContext(WithSession(ctx, sess)))
		cw.ensureCommitted()
	})
}

// commitWriter runs commit once, before anything reaches the client.
type commitWriter struct {
	http.ResponseWriter
	commit    func() bool
	committed bool
	ok        bool
}

func (cw *commitWriter) ensureCommitted() bool {
	if !cw.committed {
		cw.committed = true
		cw.ok = cw.commit()
	}
	return cw.ok
}

func (cw *commitWriter) WriteHeader(code int) {
	if cw.ensureCommitted() {
		cw.ResponseWriter.WriteHeader(code)
	}
}

func (cw *commitWriter) Write(b []byte) (int, error) {
	if !cw.ensureCommitted() {
		return 0, ErrSaveFailed
	}
	return cw.ResponseWriter.Write(b)
}

func (cw *commitWriter) Flush() {
	if !cw.ensureCommitted() {
		return
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *commitWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
