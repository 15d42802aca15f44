package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/webstarter/handler"
	"github.com/dmitrymomot/webstarter/internal/app"
	"github.com/dmitrymomot/webstarter/internal/auth"
	"github.com/dmitrymomot/webstarter/pkg/clientip"
	"github.com/dmitrymomot/webstarter/pkg/config"
	"github.com/dmitrymomot/webstarter/pkg/cookie"
	"github.com/dmitrymomot/webstarter/pkg/httpserver"
	"github.com/dmitrymomot/webstarter/pkg/logger"
	"github.com/dmitrymomot/webstarter/pkg/ratelimiter"
	"github.com/dmitrymomot/webstarter/pkg/requestid"
	"github.com/dmitrymomot/webstarter/pkg/session"
	"github.com/dmitrymomot/webstarter/pkg/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg app.Config
	if err := config.Load(&cfg, config.WithEnvFiles(envFiles...)); err != nil {
		return err
	}

	env := cfg.Environment()
	log := logger.New(
		logger.WithEnvironment(env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor(), session.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx := cmd.Context()

	backend, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to open session store", logger.Error(err), slog.String("store", cfg.SessionStore))
		return err
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error("failed to close session store", logger.Error(err))
		}
	}()

	cookieMgr, err := cookie.New(cfg.Secrets(), cookie.WithSecure(cfg.Session.SecureCookies))
	if err != nil {
		return err
	}

	respond := handler.NewErrorResponder(log)
	sessions := session.New(backend.Store,
		session.WithConfig(cfg.Session),
		session.WithCookieManager(cookieMgr),
		session.WithLogger(log),
		session.WithErrorHandler(respond),
	)

	tmpl, err := views.New(cfg.ViewsDir, views.WithReload(env.IsDevelopment()))
	if err != nil {
		log.ErrorContext(ctx, "failed to load views", logger.Error(err), slog.String("dir", cfg.ViewsDir))
		return err
	}

	authn, err := auth.NewStaticAuthenticator(cfg.Auth, auth.WithLogger(log))
	if err != nil {
		return err
	}
	if authn.Len() == 0 {
		log.WarnContext(ctx, "AUTH_USERS is empty, every login will be rejected", logger.Component("auth"))
	}

	limiterStore := ratelimiter.NewMemoryStore()
	defer func() { _ = limiterStore.Close() }()
	loginLimiter, err := ratelimiter.NewBucket(limiterStore, cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	router := app.NewRouter(app.Deps{
		Logger:   log,
		Sessions: sessions,
		Auth: auth.NewHandler(authn, sessions, tmpl,
			auth.WithAppName(cfg.Name),
			auth.WithHandlerLogger(log),
			auth.WithLoginMiddleware(ratelimiter.Middleware(loginLimiter, ratelimiter.ByClientIP, respond)),
		),
		StaticDir:         cfg.StaticDir,
		HealthChecks:      []func(context.Context) error{backend.Check},
		TrustProxyHeaders: cfg.ClientIP.TrustProxyHeaders,
		AllowedOrigins:    cfg.CORSOrigins,
	})

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}
