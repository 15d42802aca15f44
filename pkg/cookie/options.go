package cookie

import (
	"net/http"
	"time"
)

// Options are the attributes written with a cookie. Manager holds a default
// set; per-call Option values override it for one cookie only.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int // seconds; 0 leaves a browser-session cookie, negative deletes
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets the lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

// WithSecure restricts the cookie to HTTPS. Production deployments behind
// TLS turn it on through SESSION_SECURE_COOKIES.
func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

func (o Options) with(opts []Option) Options {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// build returns the Set-Cookie value for name. A negative MaxAge also sets
// an Expires in the past for clients that ignore Max-Age.
func (o Options) build(name, value string) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	if o.MaxAge < 0 {
		c.Value = ""
		c.Expires = time.Unix(0, 0)
	}
	return c
}
