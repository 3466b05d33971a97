package urlnorm

import (
	"net/url"
	"strings"
)

// NormalizeGeneric passes an http(s) URL through with its fragment stripped
// and the scheme and host lowercased, so casing variants of the same URL
// serialize identically. It is the fallback for hosts no platform rule
// claims; any non-http(s) or unparseable input yields "".
func NormalizeGeneric(raw string, base *url.URL) string {
	u := toURL(raw, base)
	if u == nil {
		return ""
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
