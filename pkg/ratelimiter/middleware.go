package ratelimiter

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/webstarter/pkg/clientip"
)

// KeyFunc extracts the bucket key from a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByClientIP keys requests by the address clientip.Middleware resolved,
// falling back to the TCP peer.
func ByClientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r, false)
}

// Middleware rejects requests whose bucket is empty. onError receives
// ErrLimitExceeded for rejected requests and the store error when the check
// itself fails; nil falls back to plain text responses.
func Middleware(limiter Limiter, keyFunc KeyFunc, onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if keyFunc == nil {
		keyFunc = ByClientIP
	}
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			if errors.Is(err, ErrLimitExceeded) {
				http.Error(w, "too_many_requests", http.StatusTooManyRequests)
				return
			}
			http.Error(w, "internal_server_error", http.StatusInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				onError(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				retry := result.RetryAfter(time.Now())
				h.Set("Retry-After", strconv.Itoa(max(1, int(retry.Round(time.Second).Seconds()))))
				onError(w, r, ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
