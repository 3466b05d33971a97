package urlnorm

import "net/url"

// ResolveIngestTarget dispatches a raw URL to the right platform normalizer by
// hostname, so a platform host is never claimed by another platform's rule.
// Hosts outside every allow-list fall through to the generic normalizer, as
// does a TikTok host whose path is not a video/photo page (a profile opened
// from the context menu still forwards as a plain link).
func ResolveIngestTarget(raw string, base *url.URL) string {
	u := toURL(raw, base)
	if u == nil {
		return ""
	}

	host := hostname(u)
	switch {
	case IsYouTubeHost(host):
		return NormalizeYouTube(u.String(), nil)
	case IsTikTokHost(host):
		if normalized := NormalizeTikTok(u.String(), nil); normalized != "" {
			return normalized
		}
		return NormalizeGeneric(u.String(), nil)
	case IsTwitterHost(host):
		return NormalizeTwitter(u.String(), nil)
	default:
		return NormalizeGeneric(u.String(), nil)
	}
}

// Candidates holds the raw URLs available at a context-menu click, in the
// order they should be tried.
type Candidates struct {
	LinkURL string // href of the clicked link
	SrcURL  string // src of the clicked media element
	PageURL string // document URL of the frame
	TabURL  string // URL of the tab itself
}

// ResolveFromCandidates returns the first candidate that normalizes under
// ResolveIngestTarget, in priority order link, media source, page, tab.
// Returns "" when no candidate normalizes. This is a deterministic fallback
// chain, not a scoring heuristic.
func ResolveFromCandidates(c Candidates) string {
	for _, candidate := range []string{c.LinkURL, c.SrcURL, c.PageURL, c.TabURL} {
		if candidate == "" {
			continue
		}
		if normalized := ResolveIngestTarget(candidate, nil); normalized != "" {
			return normalized
		}
	}
	return ""
}
