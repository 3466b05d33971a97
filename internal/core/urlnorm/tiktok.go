package urlnorm

import (
	"net/url"
	"regexp"
	"strings"
)

// TikTok media paths. The 15-22 digit constraint is load-bearing: it is what
// separates real item ids from incidental numbers in a path.
var (
	tiktokNamedMediaRe   = regexp.MustCompile(`(?i)^/@([^/]+)/(video|photo)/(\d{15,22})(?:/|$)`)
	tiktokGenericMediaRe = regexp.MustCompile(`(?i)^/(video|photo)/(\d{15,22})(?:/|$)`)
)

// IsTikTokHost reports whether host (lowercased, no port) is tiktok.com or one
// of its subdomains. Look-alikes such as eviltiktok.com do not match.
func IsTikTokHost(host string) bool {
	return host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com")
}

// NormalizeTikTok maps a TikTok video or photo URL to its canonical form.
//
//	/@<handle>/(video|photo)/<id> -> https://www.tiktok.com/@<handle>/<type>/<id>
//	/(video|photo)/<id>           -> https://www.tiktok.com/<type>/<id>
//
// Profile pages, search results and any path without a 15-22 digit item id
// yield "".
func NormalizeTikTok(raw string, base *url.URL) string {
	u := toURL(raw, base)
	if u == nil || !IsTikTokHost(hostname(u)) {
		return ""
	}

	if m := tiktokNamedMediaRe.FindStringSubmatch(u.Path); m != nil {
		return "https://www.tiktok.com/@" + m[1] + "/" + strings.ToLower(m[2]) + "/" + m[3]
	}
	if m := tiktokGenericMediaRe.FindStringSubmatch(u.Path); m != nil {
		return "https://www.tiktok.com/" + strings.ToLower(m[1]) + "/" + m[2]
	}
	return ""
}
