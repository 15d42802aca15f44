package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/handler"
)

func TestTempl(t *testing.T) {
	t.Parallel()

	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>Sign in</h1>")
		return err
	})

	w := httptest.NewRecorder()
	require.NoError(t, handler.Templ(comp).Render(w, httptest.NewRequest(http.MethodGet, "/login", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>Sign in</h1>", w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, handler.Templ(comp, handler.WithTemplStatus(http.StatusUnauthorized)).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTempl_FailureWritesNothing(t *testing.T) {
	t.Parallel()

	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("template failed")
	})

	w := httptest.NewRecorder()
	err := handler.Templ(comp).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Error(t, err)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Content-Type"))
}
