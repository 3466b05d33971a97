// Package capture tracks TikTok media sightings per tab. Network-observed
// play/media URLs and DOM sync events are merged into a bounded per-tab
// cache, which later answers "what content URL is this tab showing" when the
// page itself will not say.
package capture

import (
	"sync"
	"time"
)

// MaxItemsPerTab bounds the per-tab cache; the oldest records are evicted.
const MaxItemsPerTab = 16

// Record is one observed content item. Zero-valued fields mean "not seen".
type Record struct {
	ItemID   string `json:"itemId,omitempty"`
	PageURL  string `json:"pageUrl,omitempty"`
	MediaURL string `json:"mediaUrl,omitempty"`
	PlayURL  string `json:"playUrl,omitempty"`
	TS       int64  `json:"ts"`
}

func (r Record) empty() bool {
	return r.ItemID == "" && r.PageURL == "" && r.MediaURL == "" && r.PlayURL == ""
}

// State is the capture state of one tab.
type State struct {
	ActiveItemID string            `json:"activeItemId,omitempty"`
	Latest       *Record           `json:"latest,omitempty"`
	ByItemID     map[string]Record `json:"byItemId"`
	UpdatedAt    int64             `json:"updatedAt"`
}

// Patch is a partial update. nil pointer = field absent (keep current value);
// non-nil pointer = field present (its sanitized value wins, even when that
// sanitized value is empty).
type Patch struct {
	ItemID       *string
	PageURL      *string
	MediaURL     *string
	PlayURL      *string
	ActiveItemID *string
}

// String is a convenience for building Patch fields.
func String(s string) *string { return &s }

// Store holds capture state for all tabs. Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	tabs map[int]*State
	now  func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock injects the time source (tests).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		tabs: make(map[int]*State),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// tab returns the live state for tabID, creating it on first access.
// Caller must hold s.mu.
func (s *Store) tab(tabID int) *State {
	st, ok := s.tabs[tabID]
	if !ok {
		st = &State{
			ByItemID:  make(map[string]Record),
			UpdatedAt: s.nowMillis(),
		}
		s.tabs[tabID] = st
	}
	return st
}

// Get returns a copy of the tab's state, creating an empty one on first
// access.
func (s *Store) Get(tabID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.tab(tabID)
	out := State{
		ActiveItemID: st.ActiveItemID,
		UpdatedAt:    st.UpdatedAt,
		ByItemID:     make(map[string]Record, len(st.ByItemID)),
	}
	if st.Latest != nil {
		latest := *st.Latest
		out.Latest = &latest
	}
	for id, rec := range st.ByItemID {
		out.ByItemID[id] = rec
	}
	return out
}

// Delete drops all state for a closed tab.
func (s *Store) Delete(tabID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tabs, tabID)
}

// Tabs returns the ids of all tabs currently tracked.
func (s *Store) Tabs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.tabs))
	for id := range s.tabs {
		ids = append(ids, id)
	}
	return ids
}

// Upsert merge-patches the tab's state. URL fields are sanitized before
// merging; the item id is derived from the patch id or, failing that,
// extracted from any patched URL. Records that sanitize to nothing are
// discarded rather than stored.
func (s *Store) Upsert(tabID int, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.tab(tabID)
	st.UpdatedAt = s.nowMillis()

	if patch.ActiveItemID != nil {
		st.ActiveItemID = NormalizeItemID(*patch.ActiveItemID)
	}

	hasRecordPatch := patch.ItemID != nil || patch.PageURL != nil || patch.MediaURL != nil || patch.PlayURL != nil
	if !hasRecordPatch {
		return
	}

	itemID := ""
	if patch.ItemID != nil {
		itemID = NormalizeItemID(*patch.ItemID)
	}
	if itemID == "" && patch.PageURL != nil {
		itemID = ExtractItemID(*patch.PageURL)
	}
	if itemID == "" && patch.PlayURL != nil {
		itemID = ExtractItemID(*patch.PlayURL)
	}
	if itemID == "" && patch.MediaURL != nil {
		itemID = ExtractItemID(*patch.MediaURL)
	}

	var base Record
	if itemID != "" {
		if existing, ok := st.ByItemID[itemID]; ok {
			base = existing
		} else if st.Latest != nil {
			base = *st.Latest
		}
	} else if st.Latest != nil {
		base = *st.Latest
	}

	merged := Record{
		ItemID:   itemID,
		PageURL:  base.PageURL,
		MediaURL: base.MediaURL,
		PlayURL:  base.PlayURL,
		TS:       s.nowMillis(),
	}
	if patch.PageURL != nil {
		merged.PageURL = NormalizePageURL(*patch.PageURL)
	}
	if patch.MediaURL != nil {
		merged.MediaURL = NormalizeMediaURL(*patch.MediaURL)
	}
	if patch.PlayURL != nil {
		merged.PlayURL = NormalizePlayURL(*patch.PlayURL)
	}

	if merged.empty() {
		return
	}

	latest := merged
	st.Latest = &latest
	if merged.ItemID != "" {
		st.ByItemID[merged.ItemID] = merged
	}
	s.trim(st)
}

// trim evicts the oldest records past MaxItemsPerTab. Caller holds s.mu.
func (s *Store) trim(st *State) {
	for len(st.ByItemID) > MaxItemsPerTab {
		oldestID := ""
		oldestTS := int64(0)
		for id, rec := range st.ByItemID {
			if oldestID == "" || rec.TS < oldestTS {
				oldestID = id
				oldestTS = rec.TS
			}
		}
		delete(st.ByItemID, oldestID)
	}
}

// ObserveRequest feeds a network-observed URL into the tab's state. URLs
// that are neither play-endpoint nor CDN media requests are ignored.
func (s *Store) ObserveRequest(tabID int, rawURL string) {
	if tabID < 0 {
		return
	}

	playURL := NormalizePlayURL(rawURL)
	mediaURL := NormalizeMediaURL(rawURL)
	if playURL == "" && mediaURL == "" {
		return
	}

	patch := Patch{ItemID: String(ExtractItemID(rawURL))}
	if playURL != "" {
		patch.PlayURL = String(rawURL)
	}
	if mediaURL != "" {
		patch.MediaURL = String(rawURL)
	}
	s.Upsert(tabID, patch)
}

// ResolveCapturedURL answers "what content URL is this tab on", preferring
// the record matching the DOM candidate's item id, then the active item,
// then the DOM candidate itself, then the latest sighting.
func (s *Store) ResolveCapturedURL(tabID int, domCandidate string) string {
	st := s.Get(tabID)

	normalizedDOM := NormalizePageURL(domCandidate)
	domItemID := ExtractItemID(normalizedDOM)
	if domItemID == "" {
		domItemID = ExtractItemID(domCandidate)
	}

	if domItemID != "" {
		if rec, ok := st.ByItemID[domItemID]; ok {
			if pageURL := NormalizePageURL(rec.PageURL); pageURL != "" {
				return pageURL
			}
		}
	}

	if st.ActiveItemID != "" {
		if rec, ok := st.ByItemID[st.ActiveItemID]; ok {
			if pageURL := NormalizePageURL(rec.PageURL); pageURL != "" {
				return pageURL
			}
		}
	}

	if normalizedDOM != "" {
		return normalizedDOM
	}

	if st.Latest != nil {
		if pageURL := NormalizePageURL(st.Latest.PageURL); pageURL != "" {
			return pageURL
		}
	}

	return ""
}
