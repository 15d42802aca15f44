package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/webstarter/pkg/logger"
)

// WriteError writes err as a JSON error body with the matching status.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if renderErr := JSONError(err).Render(w, r); renderErr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NewErrorResponder returns a responder for pipeline stages (body parsing,
// cookie parsing, session loading). It logs 4xx at warn and 5xx at error
// level and writes a JSON error.
func NewErrorResponder(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := StatusCode(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		WriteError(w, r, err)
	}
}

// NewErrorHandler adapts NewErrorResponder for Wrap.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	respond := NewErrorResponder(log)
	return func(ctx Context, err error) {
		respond(ctx.ResponseWriter(), ctx.Request(), err)
	}
}
