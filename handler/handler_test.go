package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/handler"
	"github.com/dmitrymomot/webstarter/pkg/binder"
)

type greetRequest struct {
	Name string `json:"name" form:"name"`
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var got handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestWrap_BindsAndRenders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(ctx handler.Context, req greetRequest) handler.Response {
			return handler.JSON(map[string]string{"hello": req.Name})
		},
		handler.WithBinder[handler.Context, greetRequest](binder.Bind),
	)

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"alice"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"hello": "alice"}, decodeBody(t, w).Data)
}

func TestWrap_BindErrorUsesErrorHandler(t *testing.T) {
	t.Parallel()

	var handled error
	h := handler.Wrap(
		func(ctx handler.Context, req greetRequest) handler.Response {
			t.Fatal("handler must not run")
			return nil
		},
		handler.WithBinder[handler.Context, greetRequest](binder.Bind),
		handler.WithErrorHandler[handler.Context, greetRequest](func(ctx handler.Context, err error) {
			handled = err
			handler.WriteError(ctx.ResponseWriter(), ctx.Request(), err)
		}),
	)

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, r)

	assert.ErrorIs(t, handled, binder.ErrFailedToParseJSON)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeBody(t, w).Error.Code)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response { return nil })

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		func(ctx handler.Context, req struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		},
		handler.WithDecorators(mark("outer"), mark("inner")),
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type failingResponse struct{}

func (failingResponse) Render(http.ResponseWriter, *http.Request) error {
	return errors.New("render failed")
}

func TestWrap_RenderError(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response { return failingResponse{} })

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "internal_server_error", got.Error.Code)
	assert.NotContains(t, got.Error.Message, "render failed")
}
