package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/webstarter/handler"
	"github.com/dmitrymomot/webstarter/pkg/binder"
	"github.com/dmitrymomot/webstarter/pkg/logger"
	"github.com/dmitrymomot/webstarter/pkg/session"
)

// LoginTemplate is the view rendered by GET /login.
const LoginTemplate = "login.html"

// Views renders named templates as components.
type Views interface {
	Component(name string, data any) templ.Component
}

// Handler serves the authentication routes.
type Handler struct {
	auth         Authenticator
	sessions     *session.Manager
	views        Views
	appName      string
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	loginGuards  []func(http.Handler) http.Handler
}

// Option configures Handler.
type Option func(*Handler)

// WithAppName sets the name shown on the login page.
func WithAppName(name string) Option {
	return func(h *Handler) {
		h.appName = name
	}
}

// WithHandlerLogger sets the logger.
func WithHandlerLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// WithErrorHandler sets the error handler used by all routes.
func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) Option {
	return func(h *Handler) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// WithLoginMiddleware adds middleware in front of POST /login only,
// e.g. a rate limiter.
func WithLoginMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.loginGuards = append(h.loginGuards, mw...)
	}
}

// NewHandler wires the authentication routes.
func NewHandler(auth Authenticator, sessions *session.Manager, views Views, opts ...Option) *Handler {
	h := &Handler{
		auth:     auth,
		sessions: sessions,
		views:    views,
		appName:  "webstarter",
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.logger)
	}
	return h
}

// Routes registers the route set on r:
//
//	GET  /login   login page
//	POST /login   JSON or form credentials
//	POST /logout  destroys the session
//	GET  /me      current user
func (h *Handler) Routes(r chi.Router) {
	r.Get("/login", handler.Wrap(h.loginPage,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.With(h.loginGuards...).Post("/login", handler.Wrap(h.login,
		handler.WithBinder[handler.Context, LoginRequest](binder.Bind),
		handler.WithErrorHandler[handler.Context, LoginRequest](h.errorHandler),
	))
	r.Post("/logout", handler.Wrap(h.logout,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Get("/me", handler.Wrap(h.me,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
}

// LoginRequest accepts JSON and urlencoded bodies.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate reports missing fields.
func (req LoginRequest) Validate() error {
	verr := handler.ValidationError{}
	if strings.TrimSpace(req.Username) == "" {
		verr.Add("username", "is required")
	}
	if req.Password == "" {
		verr.Add("password", "is required")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// LoginPageData is passed to the login template.
type LoginPageData struct {
	AppName string
	User    string
}

// UserResponse is the body of successful login and /me responses.
type UserResponse struct {
	User string `json:"user"`
}

func (h *Handler) loginPage(ctx handler.Context, _ struct{}) handler.Response {
	data := LoginPageData{AppName: h.appName}
	if sess := ctx.Session(); sess != nil {
		data.User, _ = sess.UserID()
	}
	return handler.Templ(h.views.Component(LoginTemplate, data))
}

func (h *Handler) login(ctx handler.Context, req LoginRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}

	sess := ctx.Session()
	if sess == nil {
		return handler.JSONError(handler.ErrInternalServerError)
	}

	userID, err := h.auth.Authenticate(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return handler.JSONError(handler.ErrUnauthorized)
		}
		h.logger.ErrorContext(ctx, "authentication failed", logger.Component("auth"), logger.Error(err))
		return handler.JSONError(err)
	}

	// new id on privilege change
	if err := h.sessions.Regenerate(ctx, sess); err != nil {
		h.logger.ErrorContext(ctx, "failed to regenerate session", logger.Component("auth"), logger.Error(err))
		return handler.JSONError(err)
	}
	sess.SetUserID(userID)

	h.logger.InfoContext(ctx, "user logged in", logger.Component("auth"), logger.UserID(userID))
	return handler.JSON(UserResponse{User: userID})
}

func (h *Handler) logout(ctx handler.Context, _ struct{}) handler.Response {
	sess := ctx.Session()
	if sess == nil {
		return handler.Empty()
	}

	userID, _ := sess.UserID()
	if err := h.sessions.Destroy(ctx, ctx.ResponseWriter(), sess); err != nil {
		h.logger.ErrorContext(ctx, "failed to destroy session", logger.Component("auth"), logger.Error(err))
		return handler.JSONError(err)
	}

	if userID != "" {
		h.logger.InfoContext(ctx, "user logged out", logger.Component("auth"), logger.UserID(userID))
	}
	return handler.Empty()
}

func (h *Handler) me(ctx handler.Context, _ struct{}) handler.Response {
	sess := ctx.Session()
	if sess == nil {
		return handler.JSONError(handler.ErrUnauthorized)
	}
	userID, ok := sess.UserID()
	if !ok {
		return handler.JSONError(handler.ErrUnauthorized)
	}
	return handler.JSON(UserResponse{User: userID})
}
