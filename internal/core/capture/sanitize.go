package capture

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/clipsend/clipsend/internal/core/urlnorm"
)

var (
	itemIDRegex     = regexp.MustCompile(`^\d{15,22}$`)
	mediaPathRegex  = regexp.MustCompile(`(?i)/(?:video|photo)/(\d{15,22})`)
	playPathRegex   = regexp.MustCompile(`(?i)^/aweme/v100/play/`)
	tosPathRegex    = regexp.MustCompile(`(?i)/video/tos/`)
	looseItemIDScan = regexp.MustCompile(`\b(\d{15,22})\b`)
)

// NormalizeItemID accepts only platform-shaped content ids (15 to 22 digits).
func NormalizeItemID(value string) string {
	id := strings.TrimSpace(value)
	if id == "" || !itemIDRegex.MatchString(id) {
		return ""
	}
	return id
}

// NormalizePageURL canonicalizes a candidate page URL and keeps it only when
// it lands on a TikTok host with a concrete video/photo path.
func NormalizePageURL(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}

	normalized := urlnorm.ResolveIngestTarget(candidate, nil)
	if normalized == "" {
		return ""
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	if !urlnorm.IsTikTokHost(strings.ToLower(parsed.Hostname())) {
		return ""
	}
	if !mediaPathRegex.MatchString(parsed.Path) {
		return ""
	}
	return normalized
}

// NormalizePlayURL keeps only www.tiktok.com play-endpoint URLs.
func NormalizePlayURL(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	if strings.ToLower(parsed.Hostname()) != "www.tiktok.com" {
		return ""
	}
	if !playPathRegex.MatchString(parsed.Path) {
		return ""
	}
	return parsed.String()
}

// NormalizeMediaURL keeps only TikTok CDN media URLs (the /video/tos/ family).
func NormalizeMediaURL(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	if !strings.Contains(strings.ToLower(parsed.Hostname()), "tiktok.com") {
		return ""
	}
	if !tosPathRegex.MatchString(parsed.Path) {
		return ""
	}
	return parsed.String()
}

// ExtractItemID pulls a content id out of any URL-ish string: the video/photo
// path segment first, then the item_id query parameter, then any bare
// 15-22 digit run.
func ExtractItemID(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}

	if parsed, err := url.Parse(candidate); err == nil {
		if m := mediaPathRegex.FindStringSubmatch(parsed.Path); m != nil {
			if id := NormalizeItemID(m[1]); id != "" {
				return id
			}
		}
		if id := NormalizeItemID(parsed.Query().Get("item_id")); id != "" {
			return id
		}
	}

	if m := looseItemIDScan.FindStringSubmatch(candidate); m != nil {
		return NormalizeItemID(m[1])
	}
	return ""
}
