// Package messages defines the wire protocol between front-end surfaces
// (popups, content scripts, relay clients) and the dispatcher. Incoming
// bytes are decoded into explicit typed messages; nothing downstream ever
// touches a raw map.
package messages

import (
	"encoding/json"
	"errors"
	"strings"
)

// Wire type tags.
const (
	TypeSendQuick       = "clipsend/send-quick"
	TypeSendCompose     = "clipsend/send-compose"
	TypeGetComposeState = "clipsend/get-compose-state"
	TypeSyncActiveItem  = "clipsend/tiktok-sync-active-item"
	TypeGetCapturedURL  = "clipsend/tiktok-get-captured-url"
	TypeShowToast       = "clipsend/show-toast"
)

// Known send sources.
const (
	SourceYouTube     = "youtube"
	SourceTikTok      = "tiktok"
	SourceTwitter     = "twitter"
	SourceContextMenu = "context-menu"
	SourcePopup       = "popup"
	SourceUnknown     = "unknown"
)

// ErrUnrecognized is returned for bytes that decode to no known message.
var ErrUnrecognized = errors.New("unrecognized message")

// Request is a decoded dispatcher request. Exactly the types below
// implement it.
type Request interface {
	requestType() string
}

// SendQuick fires an immediate send of a raw URL.
type SendQuick struct {
	URL    string
	Source string
}

// SendCompose sends a URL with optional caption and flags. SaveToBoard rides
// along for the compose surfaces; it never reaches the ingest payload.
type SendCompose struct {
	URL          string
	Text         string
	ForceRefresh bool
	SaveToBoard  bool
}

// GetComposeState asks for the current compose draft plus settings status.
type GetComposeState struct{}

// SyncActiveItem reports the item a TikTok tab is currently showing.
// Empty fields mean "no longer known" and clear the stored value.
type SyncActiveItem struct {
	ItemID string
	URL    string
}

// GetCapturedURL asks what content URL a TikTok tab is on.
type GetCapturedURL struct {
	DOMCandidate string
}

func (SendQuick) requestType() string       { return TypeSendQuick }
func (SendCompose) requestType() string     { return TypeSendCompose }
func (GetComposeState) requestType() string { return TypeGetComposeState }
func (SyncActiveItem) requestType() string  { return TypeSyncActiveItem }
func (GetCapturedURL) requestType() string  { return TypeGetCapturedURL }

// wireRequest is the superset shape on the wire; DecodeRequest validates
// field-by-field per type.
type wireRequest struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	Source       string `json:"source"`
	Text         string `json:"text"`
	ForceRefresh bool   `json:"forceRefresh"`
	SaveToBoard  bool   `json:"saveToBoard"`
	ItemID       string `json:"itemId"`
}

// DecodeRequest parses raw bytes into a typed request. Unknown types,
// non-JSON input, and messages missing required fields all come back as
// ErrUnrecognized; the wire shape is never trusted.
func DecodeRequest(data []byte) (Request, error) {
	var wire wireRequest
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, ErrUnrecognized
	}

	switch wire.Type {
	case TypeSendQuick:
		url := strings.TrimSpace(wire.URL)
		if url == "" {
			return nil, ErrUnrecognized
		}
		source := strings.TrimSpace(wire.Source)
		if source == "" {
			source = SourceUnknown
		}
		return SendQuick{URL: url, Source: source}, nil

	case TypeSendCompose:
		url := strings.TrimSpace(wire.URL)
		if url == "" {
			return nil, ErrUnrecognized
		}
		return SendCompose{
			URL:          url,
			Text:         wire.Text,
			ForceRefresh: wire.ForceRefresh,
			SaveToBoard:  wire.SaveToBoard,
		}, nil

	case TypeGetComposeState:
		return GetComposeState{}, nil

	case TypeSyncActiveItem:
		return SyncActiveItem{
			ItemID: strings.TrimSpace(wire.ItemID),
			URL:    strings.TrimSpace(wire.URL),
		}, nil

	case TypeGetCapturedURL:
		return GetCapturedURL{DOMCandidate: strings.TrimSpace(wire.URL)}, nil

	default:
		return nil, ErrUnrecognized
	}
}

// ActionResponse answers a send request.
type ActionResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	JobID     string `json:"jobId,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// ComposeStateResponse answers GetComposeState.
type ComposeStateResponse struct {
	OK            bool   `json:"ok"`
	Message       string `json:"message,omitempty"`
	URL           string `json:"url"`
	Text          string `json:"text"`
	ForceRefresh  bool   `json:"forceRefresh"`
	SaveToBoard   bool   `json:"saveToBoard"`
	HasSettings   bool   `json:"hasSettings"`
	SettingsError string `json:"settingsError,omitempty"`
	DraftSource   string `json:"draftSource,omitempty"`
}

// CapturedURLResponse answers GetCapturedURL.
type CapturedURLResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url,omitempty"`
}

// Toast levels.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is user-visible feedback pushed back to a surface.
type Toast struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewToast builds a toast, clamping unknown levels to info. Empty messages
// yield a zero Toast that callers should drop.
func NewToast(level, message string) Toast {
	message = strings.TrimSpace(message)
	if message == "" {
		return Toast{}
	}
	switch level {
	case ToastSuccess, ToastError, ToastInfo:
	default:
		level = ToastInfo
	}
	return Toast{Type: TypeShowToast, Level: level, Message: message}
}
