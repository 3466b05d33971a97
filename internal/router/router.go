// Package router dispatches decoded messages to the ingest client, the
// compose draft, and the per-tab capture store. Every request resolves to a
// response value; no failure escapes as a panic or an unhandled error.
package router

import (
	"context"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/capture"
	"github.com/clipsend/clipsend/internal/core/ingest"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
	"github.com/clipsend/clipsend/internal/messages"
)

// Router wires request messages to the components that serve them.
type Router struct {
	client  *ingest.Client
	capture *capture.Store

	loadSettings func() (*config.Settings, error)
	loadDraft    func() (*config.ComposeDraft, error)
	clearDraft   func() error
	activeURL    func() string
}

// Option configures a Router.
type Option func(*Router)

// WithSettingsLoader overrides settings resolution.
func WithSettingsLoader(load func() (*config.Settings, error)) Option {
	return func(r *Router) {
		if load != nil {
			r.loadSettings = load
		}
	}
}

// WithDraftStore overrides compose-draft persistence.
func WithDraftStore(load func() (*config.ComposeDraft, error), clear func() error) Option {
	return func(r *Router) {
		if load != nil {
			r.loadDraft = load
		}
		if clear != nil {
			r.clearDraft = clear
		}
	}
}

// WithActiveURL supplies the "URL of the surface the user is looking at"
// fallback used when no draft exists.
func WithActiveURL(active func() string) Option {
	return func(r *Router) {
		if active != nil {
			r.activeURL = active
		}
	}
}

// New creates a Router over an ingest client and a capture store.
func New(client *ingest.Client, store *capture.Store, opts ...Option) *Router {
	r := &Router{
		client:       client,
		capture:      store,
		loadSettings: config.LoadSettings,
		loadDraft:    config.LoadDraft,
		clearDraft:   config.ClearDraft,
		activeURL:    func() string { return "" },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func responseFromResult(result ingest.Result) messages.ActionResponse {
	if result.OK {
		return messages.ActionResponse{OK: true, JobID: result.JobID, Message: result.Message}
	}
	return messages.ActionResponse{
		OK:        false,
		Message:   result.Failure.Message,
		ErrorCode: string(result.Failure.Code),
	}
}

func invalidURLResponse(message string) messages.ActionResponse {
	return messages.ActionResponse{
		OK:        false,
		Message:   message,
		ErrorCode: string(ingest.CodeInvalidPayload),
	}
}

// SendQuick normalizes and fires an immediate send. A tiktok-sourced request
// must land on a concrete video/photo page URL; other sources go through the
// general normalizer.
func (r *Router) SendQuick(ctx context.Context, msg messages.SendQuick) messages.ActionResponse {
	url := msg.URL
	if msg.Source == messages.SourceTikTok {
		url = capture.NormalizePageURL(msg.URL)
		if url == "" {
			return invalidURLResponse("URL TikTok invalide. Ouvre directement une URL /video ou /photo puis réessaie.")
		}
	} else if urlnorm.ResolveIngestTarget(url, nil) == "" {
		return invalidURLResponse("URL invalide ou non supportée.")
	}

	return responseFromResult(r.client.Send(ctx, ingest.Quick(url), nil))
}

// SendCompose sends a URL with caption and flags, clearing the persisted
// draft on success.
func (r *Router) SendCompose(ctx context.Context, msg messages.SendCompose) messages.ActionResponse {
	if urlnorm.ResolveIngestTarget(msg.URL, nil) == "" {
		return invalidURLResponse("URL invalide ou non supportée.")
	}

	result := r.client.Send(ctx, ingest.Compose(msg.URL, msg.Text, msg.ForceRefresh), nil)
	if result.OK {
		// Draft clearing is best effort; the send already happened.
		_ = r.clearDraft()
	}
	return responseFromResult(result)
}

// ComposeState reports the current draft (or the active surface URL when no
// draft exists) plus whether settings are usable.
func (r *Router) ComposeState() messages.ComposeStateResponse {
	resp := messages.ComposeStateResponse{OK: true}

	_, err := r.loadSettings()
	resp.HasSettings = err == nil
	if err != nil {
		resp.SettingsError = "Configuration incomplète. Ouvre les options de l’extension."
	}

	draft, draftErr := r.loadDraft()
	if draftErr == nil && draft != nil {
		resp.URL = draft.URL
		resp.Text = draft.Text
		resp.ForceRefresh = draft.ForceRefresh
		resp.SaveToBoard = draft.SaveToBoard
		resp.DraftSource = draft.Source
		return resp
	}

	if active := r.activeURL(); active != "" {
		resp.URL = urlnorm.ResolveIngestTarget(active, nil)
	}
	return resp
}

// SyncActiveItem records what a TikTok tab is currently showing. The active
// item id is always written (empty clears it); the record fields only when
// they sanitize to something.
func (r *Router) SyncActiveItem(tabID int, msg messages.SyncActiveItem) messages.ActionResponse {
	if tabID >= 0 {
		itemID := capture.NormalizeItemID(msg.ItemID)
		pageURL := capture.NormalizePageURL(msg.URL)

		patch := capture.Patch{ActiveItemID: capture.String(itemID)}
		if itemID != "" {
			patch.ItemID = capture.String(itemID)
		}
		if pageURL != "" {
			patch.PageURL = capture.String(pageURL)
		}
		r.capture.Upsert(tabID, patch)
	}
	return messages.ActionResponse{OK: true}
}

// CapturedURL answers "what content URL is this tab on" from the capture
// store.
func (r *Router) CapturedURL(tabID int, msg messages.GetCapturedURL) messages.CapturedURLResponse {
	if tabID < 0 {
		return messages.CapturedURLResponse{OK: false}
	}
	url := r.capture.ResolveCapturedURL(tabID, msg.DOMCandidate)
	return messages.CapturedURLResponse{OK: url != "", URL: url}
}

// ObserveRequest feeds a network-observed URL into the capture store.
func (r *Router) ObserveRequest(tabID int, rawURL string) {
	r.capture.ObserveRequest(tabID, rawURL)
}

// CloseTab drops capture state for a closed tab.
func (r *Router) CloseTab(tabID int) {
	r.capture.Delete(tabID)
}

// Handle dispatches any decoded request and returns its response value.
// Unknown request types come back as a failed ActionResponse, never a panic.
func (r *Router) Handle(ctx context.Context, tabID int, req messages.Request) any {
	switch msg := req.(type) {
	case messages.SendQuick:
		return r.SendQuick(ctx, msg)
	case messages.SendCompose:
		return r.SendCompose(ctx, msg)
	case messages.GetComposeState:
		return r.ComposeState()
	case messages.SyncActiveItem:
		return r.SyncActiveItem(tabID, msg)
	case messages.GetCapturedURL:
		return r.CapturedURL(tabID, msg)
	default:
		return messages.ActionResponse{
			OK:        false,
			Message:   "Message non supporté.",
			ErrorCode: "UNKNOWN",
		}
	}
}
