// Package clientip resolves the originating client address of a request.
//
// By default only the TCP peer address is used. When the server runs behind
// a reverse proxy that overwrites forwarding headers, enable
// TRUST_PROXY_HEADERS and the first valid address from CF-Connecting-IP,
// X-Forwarded-For or X-Real-IP is used instead. Never enable it when clients
// can reach the server directly, since the headers are client controlled.
//
//	r.Use(clientip.Middleware(cfg.TrustProxyHeaders))
//
//	ip := clientip.FromContext(r.Context())
//
// LoggerExtractor adds a "client_ip" attribute to every record logged with a
// request context.
package clientip
