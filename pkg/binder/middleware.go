package binder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultMaxBodySize is the largest body the parsing stage accepts (1MB).
const DefaultMaxBodySize = 1 << 20

// Payload is the parsed request body.
type Payload struct {
	// MediaType is the request media type without parameters.
	MediaType string
	// JSON holds the decoded value for JSON bodies.
	JSON any
	// Form holds the decoded values for urlencoded bodies.
	Form url.Values
}

type payloadContextKey struct{}

// PayloadFromContext returns the body parsed by Middleware. The second value
// is false when the request had no parseable body.
func PayloadFromContext(ctx context.Context) (*Payload, bool) {
	p, ok := ctx.Value(payloadContextKey{}).(*Payload)
	return p, ok
}

// Middleware parses JSON and urlencoded request bodies before routing.
//
// A JSON body must hold exactly one valid JSON value and a form body must be
// well formed; otherwise onError is called with an error wrapping
// ErrFailedToParseJSON or ErrInvalidForm and the chain stops. Bodies larger
// than DefaultMaxBodySize fail with ErrBodyTooLarge. Other content types and
// empty bodies pass through untouched.
//
// The body is buffered and put back on the request so the typed binders can
// decode it again.
func Middleware(onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			code := http.StatusBadRequest
			if errors.Is(err, ErrBodyTooLarge) {
				code = http.StatusRequestEntityTooLarge
			}
			http.Error(w, http.StatusText(code), code)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			mt := mediaType(r)
			if !isJSON(mt) && mt != MIMEApplicationForm {
				next.ServeHTTP(w, r)
				return
			}

			body, err := readBody(r.Body, DefaultMaxBodySize)
			if err != nil {
				onError(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if len(bytes.TrimSpace(body)) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			payload := &Payload{MediaType: mt}
			if isJSON(mt) {
				payload.JSON, err = decodeJSONValue(body)
			} else {
				payload.Form, err = url.ParseQuery(string(body))
				if err != nil {
					err = fmt.Errorf("%w: %v", ErrInvalidForm, err)
				}
			}
			if err != nil {
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), payloadContextKey{}, payload)))
		})
	}
}

func readBody(body io.ReadCloser, limit int64) ([]byte, error) {
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, errors.Join(ErrFailedToReadBody, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}

// decodeJSONValue decodes exactly one JSON value and rejects trailing data.
func decodeJSONValue(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
	}
	return v, nil
}
