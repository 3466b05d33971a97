package urlnorm

import (
	"net/url"
	"regexp"
)

// twitterHosts is the X/Twitter host allow-list.
var twitterHosts = map[string]bool{
	"x.com":           true,
	"www.x.com":       true,
	"twitter.com":     true,
	"www.twitter.com": true,
}

var (
	twitterUserStatusRe = regexp.MustCompile(`(?i)^/([^/]+)/status/(\d+)`)
	twitterWebStatusRe  = regexp.MustCompile(`(?i)^/i/web/status/(\d+)`)
)

// IsTwitterHost reports whether host (lowercased, no port) is an accepted
// X/Twitter hostname.
func IsTwitterHost(host string) bool {
	return twitterHosts[host]
}

// NormalizeTwitter maps an X/Twitter status URL to its canonical form,
// preserving the origin the user was on:
//
//	/<user>/status/<digits>   -> <origin>/<user>/status/<digits>
//	/i/web/status/<digits>    -> <origin>/i/web/status/<digits>
//
// Home, profile and search pages yield "".
func NormalizeTwitter(raw string, base *url.URL) string {
	u := toURL(raw, base)
	if u == nil || !twitterHosts[hostname(u)] {
		return ""
	}

	if m := twitterUserStatusRe.FindStringSubmatch(u.Path); m != nil {
		return origin(u) + "/" + m[1] + "/status/" + m[2]
	}
	if m := twitterWebStatusRe.FindStringSubmatch(u.Path); m != nil {
		return origin(u) + "/i/web/status/" + m[1]
	}
	return ""
}
