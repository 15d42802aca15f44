package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/webstarter/handler"
	"github.com/dmitrymomot/webstarter/internal/auth"
	"github.com/dmitrymomot/webstarter/pkg/binder"
	"github.com/dmitrymomot/webstarter/pkg/clientip"
	"github.com/dmitrymomot/webstarter/pkg/cookie"
	"github.com/dmitrymomot/webstarter/pkg/httpserver"
	"github.com/dmitrymomot/webstarter/pkg/logger"
	"github.com/dmitrymomot/webstarter/pkg/requestid"
	"github.com/dmitrymomot/webstarter/pkg/session"
)

// Deps are the collaborators NewRouter wires together.
type Deps struct {
	Logger       *slog.Logger
	Sessions     *session.Manager
	Auth         *auth.Handler
	StaticDir    string
	HealthChecks []func(context.Context) error

	// TrustProxyHeaders takes the client address from proxy headers.
	TrustProxyHeaders bool

	// AllowedOrigins limits CORS. Empty allows any origin.
	AllowedOrigins []string
}

// NewRouter builds the request pipeline:
// request id, client address, access log, panic recovery, CORS, body
// parsing, cookie parsing, session, routes.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	respond := handler.NewErrorResponder(log)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(d.TrustProxyHeaders),
		logger.Middleware(log),
		middleware.Recoverer,
		cors.Handler(corsOptions(d.AllowedOrigins)),
		binder.Middleware(respond),
		cookie.Middleware(respond),
	)
	if d.Sessions != nil {
		r.Use(d.Sessions.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, r, handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, r, handler.ErrMethodNotAllowed)
	})

	r.Get("/", handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.RawJSON(map[string]string{"server_status": "ok"})
	}))
	r.Get("/healthz", httpserver.HealthCheckHandler(log, d.HealthChecks...))

	if d.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(noListingFS{http.Dir(d.StaticDir)}))
		r.Handle("/static/*", fs)
	}

	if d.Auth != nil {
		r.Group(d.Auth.Routes)
	}

	return r
}

func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders:   []string{requestid.Header},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 {
		// reflect the request origin; a literal "*" is not valid with credentials
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return opts
}

// noListingFS hides directories that have no index.html.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		index, err := n.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			_ = f.Close()
			return nil, os.ErrNotExist
		}
		_ = index.Close()
	}
	return f, nil
}
