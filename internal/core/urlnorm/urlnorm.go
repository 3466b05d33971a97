// Package urlnorm maps raw, platform-specific post URLs to canonical content
// URLs. Every normalizer is a pure function: the same input (and base) always
// yields the same output, and two URLs denoting the same content normalize to
// the identical string. Rejected input yields "".
package urlnorm

import (
	"net/url"
	"strings"
)

// httpProtocols are the only schemes a normalizer accepts.
var httpProtocols = map[string]bool{
	"http":  true,
	"https": true,
}

// toURL parses raw against an optional base. Returns nil on any parse failure
// or when the result has no http(s) scheme (including relative input without a
// base).
func toURL(raw string, base *url.URL) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var (
		u   *url.URL
		err error
	)
	if base != nil {
		u, err = base.Parse(raw)
	} else {
		u, err = url.Parse(raw)
	}
	if err != nil {
		return nil
	}
	if !httpProtocols[strings.ToLower(u.Scheme)] {
		return nil
	}
	return u
}

// hostname returns the lowercased hostname without port.
func hostname(u *url.URL) string {
	return strings.ToLower(u.Hostname())
}

// origin returns scheme://host with default ports elided, lowercased.
func origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := hostname(u)
	port := u.Port()
	if port != "" && !isDefaultPort(scheme, port) {
		host += ":" + port
	}
	return scheme + "://" + host
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}
