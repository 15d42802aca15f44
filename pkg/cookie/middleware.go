package cookie

import (
	"context"
	"errors"
	"net/http"
	"net/textproto"
	"strings"
)

type jarContextKey struct{}

// Jar holds the request cookies by name. When a name repeats, the first
// occurrence wins, matching http.Request.Cookie.
type Jar map[string]string

// FromContext returns the cookies parsed by Middleware.
func FromContext(ctx context.Context) (Jar, bool) {
	jar, ok := ctx.Value(jarContextKey{}).(Jar)
	return jar, ok
}

// WithJar stores jar in ctx.
func WithJar(ctx context.Context, jar Jar) context.Context {
	return context.WithValue(ctx, jarContextKey{}, jar)
}

// Parse reads every Cookie header of r. Blank headers and empty pairs
// (a trailing "; " for example) are skipped; a non-empty pair that is not a
// valid name=value yields ErrMalformedHeader.
func Parse(r *http.Request) (Jar, error) {
	jar := make(Jar)
	for _, line := range r.Header.Values("Cookie") {
		for pair := range strings.SplitSeq(line, ";") {
			pair = textproto.TrimString(pair)
			if pair == "" {
				continue
			}
			cookies, err := http.ParseCookie(pair)
			if err != nil {
				return nil, errors.Join(ErrMalformedHeader, err)
			}
			for _, c := range cookies {
				if _, seen := jar[c.Name]; !seen {
					jar[c.Name] = c.Value
				}
			}
		}
	}
	return jar, nil
}

// Middleware parses request cookies into a Jar stored in the request context.
// A malformed Cookie header stops the chain; onError renders the response
// (nil falls back to a plain 400).
func Middleware(onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "bad_request", http.StatusBadRequest)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar, err := Parse(r)
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithJar(r.Context(), jar)))
		})
	}
}

