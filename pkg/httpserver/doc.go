// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, lifecycle hooks and a health-check handler.
//
// Run binds the listener, serves the handler and blocks until the context is
// cancelled, SIGINT or SIGTERM arrives, or Shutdown is called. Shutdown waits
// up to the configured deadline for in-flight requests.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Config reads PORT (default 80) and the HTTP_*_TIMEOUT variables.
// Start and shutdown failures are wrapped with ErrStart and ErrShutdown.
package httpserver
