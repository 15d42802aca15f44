package binder_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/webstarter/pkg/binder"
)

func echoPayload(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := binder.PayloadFromContext(r.Context())
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		w.Header().Set("X-Has-Payload", map[bool]string{true: "yes", false: "no"}[ok])
		if ok && p.Form != nil {
			w.Header().Set("X-Form-Name", p.Form.Get("name"))
		}
		_, _ = w.Write(body)
	})
}

func serve(h http.Handler, method, contentType, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, "/", nil)
	} else {
		r = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var gotErr error
	onError := func(w http.ResponseWriter, _ *http.Request, err error) {
		gotErr = err
		code := http.StatusBadRequest
		if errors.Is(err, binder.ErrBodyTooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		w.WriteHeader(code)
	}

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		code        int
		payload     string
		wantErr     error
	}{
		{"no body", http.MethodGet, "", "", http.StatusOK, "no", nil},
		{"valid json", http.MethodPost, "application/json", `{"a":1}`, http.StatusOK, "yes", nil},
		{"json with charset", http.MethodPost, "application/json; charset=utf-8", `[1,2]`, http.StatusOK, "yes", nil},
		{"json scalar", http.MethodPost, "application/json", `"x"`, http.StatusOK, "yes", nil},
		{"malformed json", http.MethodPost, "application/json", `{"a":`, http.StatusBadRequest, "", binder.ErrFailedToParseJSON},
		{"trailing json", http.MethodPost, "application/json", `{"a":1}{"b":2}`, http.StatusBadRequest, "", binder.ErrFailedToParseJSON},
		{"whitespace json body", http.MethodPost, "application/json", "  \n", http.StatusOK, "no", nil},
		{"valid form", http.MethodPost, "application/x-www-form-urlencoded", "name=alice&x=1", http.StatusOK, "yes", nil},
		{"malformed form", http.MethodPost, "application/x-www-form-urlencoded", "name=%zz", http.StatusBadRequest, "", binder.ErrInvalidForm},
		{"other content type", http.MethodPost, "text/plain", "{not json", http.StatusOK, "no", nil},
		{"too large", http.MethodPost, "application/json", `"` + strings.Repeat("a", binder.DefaultMaxBodySize) + `"`, http.StatusRequestEntityTooLarge, "", binder.ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr = nil
			h := binder.Middleware(onError)(echoPayload(t))
			w := serve(h, tt.method, tt.contentType, tt.body)

			assert.Equal(t, tt.code, w.Code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, gotErr, tt.wantErr)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.payload, w.Header().Get("X-Has-Payload"))
			assert.Equal(t, tt.body, w.Body.String(), "body is restored for the handler")
		})
	}
}

func TestMiddleware_FormPayload(t *testing.T) {
	t.Parallel()

	h := binder.Middleware(nil)(echoPayload(t))
	w := serve(h, http.MethodPost, "application/x-www-form-urlencoded", "name=alice")
	assert.Equal(t, "alice", w.Header().Get("X-Form-Name"))
}

func TestMiddleware_JSONPayloadValue(t *testing.T) {
	t.Parallel()

	var got any
	h := binder.Middleware(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		p, ok := binder.PayloadFromContext(r.Context())
		require.True(t, ok)
		got = p.JSON
	}))

	serve(h, http.MethodPost, "application/json", `{"user":"admin","n":2}`)
	assert.Equal(t, map[string]any{"user": "admin", "n": json.Number("2")}, got)
}

func TestMiddleware_DefaultErrorResponder(t *testing.T) {
	t.Parallel()

	h := binder.Middleware(nil)(echoPayload(t))

	w := serve(h, http.MethodPost, "application/json", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(h, http.MethodPost, "application/json", `"`+strings.Repeat("a", binder.DefaultMaxBodySize+1)+`"`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
