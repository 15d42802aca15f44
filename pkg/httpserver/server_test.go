package httpserver_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/pkg/httpserver"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

// start runs srv in the background and waits for the start hook.
// Extra options are applied before the hook option.
func start(t *testing.T, ctx context.Context, h http.Handler, opts ...httpserver.Option) (*httpserver.Server, <-chan error) {
	t.Helper()

	started := make(chan struct{})
	opts = append([]httpserver.Option{
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(100 * time.Millisecond),
	}, opts...)
	opts = append(opts, httpserver.WithStartHook(func(*slog.Logger) { close(started) }))

	srv := httpserver.New(opts...)
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	select {
	case <-started:
	case err := <-done:
		t.Fatalf("server exited before start: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	return srv, done
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not finish")
	}
}

func TestRun_ServesUntilContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, done := start(t, ctx, okHandler)

	resp, err := http.Get("http://" + srv.Addr())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	cancel()
	waitDone(t, done)
}

func TestShutdown_Idempotent(t *testing.T) {
	t.Parallel()

	srv, done := start(t, context.Background(), okHandler)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestRun_StartErrors(t *testing.T) {
	t.Parallel()

	inUse, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = inUse.Close() })

	for name, addr := range map[string]string{
		"invalid address": ":invalid",
		"address in use":  inUse.Addr().String(),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := httpserver.New(httpserver.WithAddr(addr)).Run(context.Background(), okHandler)
			assert.ErrorIs(t, err, httpserver.ErrStart)
		})
	}
}

func TestRun_AlreadyRunning(t *testing.T) {
	t.Parallel()

	srv, done := start(t, context.Background(), okHandler)

	err := srv.Run(context.Background(), okHandler)
	assert.ErrorIs(t, err, httpserver.ErrStart)

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestAddrBeforeRun(t *testing.T) {
	t.Parallel()
	assert.Empty(t, httpserver.New().Addr())
}

func TestStopHook(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	_, done := start(t, ctx, okHandler, httpserver.WithStopHook(func(*slog.Logger) { stopped.Store(true) }))

	cancel()
	waitDone(t, done)
	assert.True(t, stopped.Load())
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hs := &http.Server{}
	var hookLogger atomic.Pointer[slog.Logger]

	srv, done := start(t, context.Background(), nil,
		httpserver.WithServer(hs),
		httpserver.WithReadTimeout(time.Second),
		httpserver.WithWriteTimeout(2*time.Second),
		httpserver.WithIdleTimeout(3*time.Second),
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger) { hookLogger.Store(l) }),
	)

	assert.Equal(t, "127.0.0.1:0", hs.Addr)
	assert.Equal(t, time.Second, hs.ReadTimeout)
	assert.Equal(t, 2*time.Second, hs.WriteTimeout)
	assert.Equal(t, 3*time.Second, hs.IdleTimeout)
	assert.NotNil(t, hs.Handler, "nil handler falls back to NotFound")

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
	assert.Same(t, log, hookLogger.Load())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	hs := &http.Server{}
	cfg := httpserver.Config{
		Host:            "127.0.0.1",
		Port:            "0",
		ReadTimeout:     4 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     6 * time.Second,
		ShutdownTimeout: 50 * time.Millisecond,
	}
	assert.Equal(t, "127.0.0.1:0", cfg.Addr())
	assert.Equal(t, ":8080", httpserver.Config{Port: "8080"}.Addr())
	assert.Empty(t, httpserver.Config{}.Addr())

	started := make(chan struct{})
	srv := httpserver.NewFromConfig(cfg,
		httpserver.WithServer(hs),
		httpserver.WithStartHook(func(*slog.Logger) { close(started) }),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), okHandler) }()
	<-started

	assert.Equal(t, 4*time.Second, hs.ReadTimeout)
	assert.Equal(t, 5*time.Second, hs.WriteTimeout)
	assert.Equal(t, 6*time.Second, hs.IdleTimeout)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr(), "bound port is reported")

	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestSignalShutdown(t *testing.T) {
	// not parallel: SIGTERM reaches every running server in the process
	_, done := start(t, context.Background(), okHandler)

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGTERM))

	waitDone(t, done)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func(){
		"addr":       func() { httpserver.WithAddr("") },
		"read":       func() { httpserver.WithReadTimeout(-time.Second) },
		"write":      func() { httpserver.WithWriteTimeout(-time.Second) },
		"idle":       func() { httpserver.WithIdleTimeout(-time.Second) },
		"shutdown":   func() { httpserver.WithShutdownTimeout(-time.Second) },
		"server":     func() { httpserver.WithServer(nil) },
		"start hook": func() { httpserver.WithStartHook(nil) },
		"stop hook":  func() { httpserver.WithStopHook(nil) },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, fn)
		})
	}

	assert.NotPanics(t, func() { httpserver.WithLogger(nil) })
}
