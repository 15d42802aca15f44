package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/webstarter/pkg/httpserver"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("db down") }

	tests := []struct {
		name   string
		checks []func(context.Context) error
		code   int
		body   string
	}{
		{"liveness", nil, http.StatusOK, "ALIVE"},
		{"ready", []func(context.Context) error{ok, ok}, http.StatusOK, "READY"},
		{"not ready", []func(context.Context) error{ok, fail}, http.StatusInternalServerError, "NOT_READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestHealthCheckHandler_UsesRequestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	var seen any
	check := func(ctx context.Context) error {
		seen = ctx.Value(key{})
		return nil
	}

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r = r.WithContext(context.WithValue(r.Context(), key{}, "value"))
	httpserver.HealthCheckHandler(nil, check).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "value", seen)
}

func TestConfigAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":80", httpserver.Config{Port: "80"}.Addr())
	assert.Equal(t, "127.0.0.1:3000", httpserver.Config{Host: "127.0.0.1", Port: "3000"}.Addr())
	assert.Empty(t, httpserver.Config{}.Addr())
}
