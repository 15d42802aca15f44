package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/webstarter/pkg/cookie"
)

// Transport defines how session ids travel between client and server
type Transport interface {
	// GetToken extracts the session id from the request
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session id in the response
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken removes the session id from the client
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the session id in an HMAC-signed cookie
type CookieTransport struct {
	cookieMgr     *cookie.Manager
	cookieName    string
	secureCookies bool
}

// NewCookieTransport creates a signed-cookie transport
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, secureCookies bool) *CookieTransport {
	return &CookieTransport{
		cookieMgr:     cookieMgr,
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

// GetToken returns ErrSessionNotFound when no cookie is present and the
// cookie package error when the signature does not verify.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookieMgr.GetSigned(r, t.cookieName)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return token, nil
}

// SetToken issues the session cookie with Max-Age equal to ttl
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if t.secureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	return t.cookieMgr.SetSigned(w, t.cookieName, token, opts...)
}

// ClearToken expires the session cookie
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
