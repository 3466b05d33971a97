package ingest

import (
	"strings"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
)

// Mode distinguishes a fire-and-forget send from a composed one.
type Mode string

const (
	ModeQuick   Mode = "quick"
	ModeCompose Mode = "compose"
)

// Request is a send request before normalization. URL is untrusted input.
type Request struct {
	Mode Mode
	URL  string

	// Compose-only fields; ignored in quick mode.
	Text         string
	ForceRefresh bool
}

// Quick builds a quick-mode request.
func Quick(url string) Request {
	return Request{Mode: ModeQuick, URL: url}
}

// Compose builds a compose-mode request.
func Compose(url, text string, forceRefresh bool) Request {
	return Request{Mode: ModeCompose, URL: url, Text: text, ForceRefresh: forceRefresh}
}

// Payload is the wire body POSTed to the ingest endpoint. Compose mode always
// carries forceRefresh (even false); quick mode never does, hence the pointer.
type Payload struct {
	GuildID      string `json:"guildId"`
	URL          string `json:"url"`
	AuthorName   string `json:"authorName"`
	AuthorImage  string `json:"authorImage,omitempty"`
	Text         string `json:"text,omitempty"`
	ForceRefresh *bool  `json:"forceRefresh,omitempty"`
}

// BuildPayload derives the wire body from a request and validated settings.
// Returns nil when the request URL does not normalize to a sendable target.
// Construction is deterministic: same request and settings, same payload.
func BuildPayload(req Request, st *config.Settings) *Payload {
	normalized := urlnorm.ResolveIngestTarget(req.URL, nil)
	if normalized == "" {
		return nil
	}

	authorName := st.AuthorName
	if authorName == "" {
		authorName = config.DefaultAuthorName
	}

	payload := &Payload{
		GuildID:     st.GuildID,
		URL:         normalized,
		AuthorName:  authorName,
		AuthorImage: st.AuthorImage,
	}

	if req.Mode == ModeCompose {
		if text := strings.TrimSpace(req.Text); text != "" {
			payload.Text = text
		}
		force := req.ForceRefresh
		payload.ForceRefresh = &force
	}

	return payload
}
