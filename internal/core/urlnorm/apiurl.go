package urlnorm

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidAPIURL is returned for API base URLs that are not absolute http(s)
// URLs. The message is shown verbatim in the options flow.
var ErrInvalidAPIURL = errors.New("URL API invalide. Utilise http:// ou https://.")

// NormalizeAPIBaseURL canonicalizes the configured ingest API base URL:
// fragment removed, trailing slashes on the path dropped, query preserved.
func NormalizeAPIBaseURL(raw string) (string, error) {
	u := toURL(strings.TrimSpace(raw), nil)
	if u == nil {
		return "", ErrInvalidAPIURL
	}

	path := strings.TrimRight(u.Path, "/")
	normalized := origin(u) + path
	if u.RawQuery != "" {
		normalized += "?" + u.RawQuery
	}
	return normalized, nil
}

// OriginPattern converts an API base URL into the host-permission match
// pattern covering its origin, e.g. "https://api.example.com/*".
func OriginPattern(apiURL string) (string, error) {
	normalized, err := NormalizeAPIBaseURL(apiURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return "", ErrInvalidAPIURL
	}
	return origin(u) + "/*", nil
}
