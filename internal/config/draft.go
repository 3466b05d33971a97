package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipsend/clipsend/internal/core/urlnorm"
)

// DraftFileName is the compose draft file inside the config directory.
const DraftFileName = "draft.json"

// ComposeDraft is a compose send staged but not yet submitted. It survives
// process restarts so a half-written message is not lost.
type ComposeDraft struct {
	URL          string `json:"url"`
	Text         string `json:"text,omitempty"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
	SaveToBoard  bool   `json:"saveToBoard,omitempty"`
	Source       string `json:"source,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

func draftPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DraftFileName), nil
}

// LoadDraft reads the persisted compose draft. Returns nil when no draft
// exists or the stored URL no longer normalizes to a sendable target.
func LoadDraft() (*ComposeDraft, error) {
	path, err := draftPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	draft := &ComposeDraft{}
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	normalized := urlnorm.ResolveIngestTarget(draft.URL, nil)
	if normalized == "" {
		return nil, nil
	}
	draft.URL = normalized

	if strings.TrimSpace(draft.Source) == "" {
		draft.Source = "unknown"
	}
	if draft.CreatedAt <= 0 {
		draft.CreatedAt = time.Now().UnixMilli()
	}
	return draft, nil
}

// SaveDraft persists the compose draft. Drafts whose URL does not normalize
// are dropped instead of written.
func SaveDraft(draft *ComposeDraft) error {
	normalized := urlnorm.ResolveIngestTarget(draft.URL, nil)
	if normalized == "" {
		return ClearDraft()
	}
	draft.URL = normalized

	if strings.TrimSpace(draft.Source) == "" {
		draft.Source = "unknown"
	}
	if draft.CreatedAt <= 0 {
		draft.CreatedAt = time.Now().UnixMilli()
	}

	path, err := draftPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ClearDraft removes the persisted draft if present.
func ClearDraft() error {
	path, err := draftPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
