package urlnorm

import (
	"net/url"
	"strings"
)

// youtubeHosts is the YouTube host allow-list. Look-alike hosts are rejected.
var youtubeHosts = map[string]bool{
	"www.youtube.com": true,
	"youtube.com":     true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// IsYouTubeHost reports whether host (lowercased, no port) is an accepted
// YouTube hostname.
func IsYouTubeHost(host string) bool {
	return youtubeHosts[host]
}

// NormalizeYouTube maps a YouTube URL to its canonical watch/shorts form.
//
//	youtu.be/<id>      -> https://www.youtube.com/watch?v=<id>
//	/shorts/<id>       -> https://www.youtube.com/shorts/<id>
//	anything with ?v=  -> https://www.youtube.com/watch?v=<v>[&t=<t>]
//
// All other query parameters and the fragment are dropped. Returns "" when the
// URL does not identify a video.
func NormalizeYouTube(raw string, base *url.URL) string {
	u := toURL(raw, base)
	if u == nil || !youtubeHosts[hostname(u)] {
		return ""
	}

	if hostname(u) == "youtu.be" {
		shortID := strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
		if shortID == "" {
			return ""
		}
		return watchURL(shortID, "")
	}

	if strings.HasPrefix(u.Path, "/shorts/") {
		segments := splitPath(u.Path)
		if len(segments) < 2 || segments[1] == "" {
			return ""
		}
		return "https://www.youtube.com/shorts/" + segments[1]
	}

	query := u.Query()
	videoID := query.Get("v")
	if videoID == "" {
		return ""
	}
	return watchURL(videoID, query.Get("t"))
}

// watchURL builds the canonical watch URL, keeping v first so output is stable.
func watchURL(videoID, timestamp string) string {
	s := "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
	if timestamp != "" {
		s += "&t=" + url.QueryEscape(timestamp)
	}
	return s
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
