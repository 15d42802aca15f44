package binder

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Form creates a binder for application/x-www-form-urlencoded bodies.
//
// Supported struct tags:
//   - `form:"name"` - binds to form field "name"
//   - `form:"-"`    - skips the field
//
// Untagged exported fields bind to their lower-cased name. Supported types
// are strings, integers, floats, bools, slices of those and pointers for
// optional fields.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mt := mediaType(r)
		if mt == "" {
			return fmt.Errorf("%w: expected %s", ErrMissingContentType, MIMEApplicationForm)
		}
		if mt != MIMEApplicationForm {
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mt, MIMEApplicationForm)
		}

		var values url.Values
		if p, ok := PayloadFromContext(r.Context()); ok && p.Form != nil {
			values = p.Form
		} else {
			var body []byte
			if r.Body != nil {
				var err error
				if body, err = readBody(r.Body, DefaultMaxBodySize); err != nil {
					return err
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}
			parsed, err := url.ParseQuery(string(body))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = parsed
		}

		return bindToStruct(v, "form", values, ErrInvalidForm)
	}
}

// Bind picks the JSON or Form binder from the request content type.
func Bind(r *http.Request, v any) error {
	mt := mediaType(r)
	switch {
	case mt == "":
		return ErrMissingContentType
	case isJSON(mt):
		return JSON()(r, v)
	case mt == MIMEApplicationForm:
		return Form()(r, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
	}
}
