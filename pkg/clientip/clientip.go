package clientip

import (
	"net"
	"net/http"
	"strings"
)

// ProxyHeaders are consulted in order when proxy headers are trusted.
var ProxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// GetIP returns the client address of r. With trustProxy the first valid
// address found in ProxyHeaders wins (X-Forwarded-For is read left to right);
// otherwise, or when none is valid, the TCP peer address is used.
// The result is "" when no valid address can be determined.
func GetIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, name := range ProxyHeaders {
			for ip := range strings.SplitSeq(r.Header.Get(name), ",") {
				if parsed := parseIP(ip); parsed != "" {
					return parsed
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP returns the canonical form of s or "" if s is not an IP.
func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
