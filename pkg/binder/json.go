package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON creates a JSON binder function. Unknown fields are rejected and the
// body must hold a single JSON value.
//
// Example:
//
//	var req LoginRequest
//	if err := binder.JSON()(r, &req); err != nil {
//		return handler.JSONError(err)
//	}
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		mt := mediaType(r)
		if mt == "" {
			return fmt.Errorf("%w: expected %s", ErrMissingContentType, MIMEApplicationJSON)
		}
		if !isJSON(mt) {
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mt, MIMEApplicationJSON)
		}
		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}

		body, err := readBody(r.Body, DefaultMaxBodySize)
		if err != nil {
			return err
		}
		// leave the body readable for later binders
		r.Body = io.NopCloser(bytes.NewReader(body))

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		return nil
	}
}
