package capture

import (
	"fmt"
	"testing"
	"time"
)

// fakeClock advances one millisecond per call so record timestamps are
// strictly ordered.
func fakeClock() func() time.Time {
	base := time.UnixMilli(1700000000000)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
}

func pageURL(id string) string {
	return "https://www.tiktok.com/@creator/video/" + id
}

func TestGetCreatesEmptyState(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))

	st := store.Get(42)
	if st.ActiveItemID != "" || st.Latest != nil || len(st.ByItemID) != 0 {
		t.Errorf("first access should be empty: %+v", st)
	}
	if st.UpdatedAt == 0 {
		t.Error("UpdatedAt should come from the injected clock")
	}
}

func TestUpsertMergePatch(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.Upsert(1, Patch{
		ItemID:  String(id),
		PageURL: String(pageURL(id) + "?is_from_webapp=1"),
	})
	store.Upsert(1, Patch{
		ItemID:   String(id),
		MediaURL: String("https://v16-webapp.tiktok.com/video/tos/useast/abc/"),
	})

	st := store.Get(1)
	rec, ok := st.ByItemID[id]
	if !ok {
		t.Fatalf("record missing: %+v", st)
	}
	if rec.PageURL != pageURL(id) {
		t.Errorf("PageURL = %q, merge lost the earlier field", rec.PageURL)
	}
	if rec.MediaURL == "" {
		t.Error("MediaURL missing after patch")
	}
	if st.Latest == nil || st.Latest.ItemID != id {
		t.Errorf("Latest = %+v", st.Latest)
	}
}

func TestUpsertPresentFieldWinsEvenWhenInvalid(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.Upsert(1, Patch{ItemID: String(id), PageURL: String(pageURL(id))})
	// Present but unsanitizable: clears the stored value.
	store.Upsert(1, Patch{ItemID: String(id), PageURL: String("https://example.com/nope")})

	rec := store.Get(1).ByItemID[id]
	if rec.PageURL != "" {
		t.Errorf("PageURL = %q, present-field patch should overwrite", rec.PageURL)
	}
}

func TestUpsertDerivesItemIDFromURLs(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.Upsert(1, Patch{PageURL: String(pageURL(id))})

	st := store.Get(1)
	if _, ok := st.ByItemID[id]; !ok {
		t.Errorf("item id should be extracted from the page URL: %+v", st.ByItemID)
	}
}

func TestUpsertAllEmptyRecordDiscarded(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))

	store.Upsert(1, Patch{PageURL: String("not a url")})

	st := store.Get(1)
	if st.Latest != nil || len(st.ByItemID) != 0 {
		t.Errorf("empty record should not be stored: %+v", st)
	}
}

func TestUpsertActiveItemOnly(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.Upsert(1, Patch{ActiveItemID: String(id)})

	st := store.Get(1)
	if st.ActiveItemID != id {
		t.Errorf("ActiveItemID = %q", st.ActiveItemID)
	}
	if st.Latest != nil {
		t.Error("active-item-only patch must not create a record")
	}
}

func TestCapBoundAndEvictionOrder(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))

	for i := 0; i < MaxItemsPerTab+4; i++ {
		id := fmt.Sprintf("759117329400765%04d", i)
		store.Upsert(1, Patch{ItemID: String(id), PageURL: String(pageURL(id))})
	}

	st := store.Get(1)
	if len(st.ByItemID) != MaxItemsPerTab {
		t.Fatalf("len(ByItemID) = %d, want %d", len(st.ByItemID), MaxItemsPerTab)
	}
	// The four oldest must be gone, the newest four present.
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("759117329400765%04d", i)
		if _, ok := st.ByItemID[id]; ok {
			t.Errorf("oldest record %s should have been evicted", id)
		}
	}
	for i := MaxItemsPerTab; i < MaxItemsPerTab+4; i++ {
		id := fmt.Sprintf("759117329400765%04d", i)
		if _, ok := st.ByItemID[id]; !ok {
			t.Errorf("newest record %s missing", id)
		}
	}
}

func TestDeleteDropsTab(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.Upsert(1, Patch{ItemID: String(id), PageURL: String(pageURL(id))})
	store.Delete(1)

	st := store.Get(1)
	if len(st.ByItemID) != 0 || st.Latest != nil {
		t.Errorf("state should be recreated empty after delete: %+v", st)
	}
}

func TestTabsIsolated(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.Upsert(1, Patch{ItemID: String(id), PageURL: String(pageURL(id))})

	if st := store.Get(2); len(st.ByItemID) != 0 {
		t.Errorf("tab 2 should be empty: %+v", st)
	}
	if ids := store.Tabs(); len(ids) != 2 {
		t.Errorf("Tabs() = %v, want two tracked tabs", ids)
	}
}

func TestObserveRequest(t *testing.T) {
	store := NewStore(WithClock(fakeClock()))
	id := "7591173294007651598"

	store.ObserveRequest(1, "https://www.tiktok.com/aweme/v100/play/?item_id="+id)
	store.ObserveRequest(1, "https://irrelevant.example.com/script.js")
	store.ObserveRequest(-1, "https://www.tiktok.com/aweme/v100/play/?item_id="+id)

	st := store.Get(1)
	rec, ok := st.ByItemID[id]
	if !ok {
		t.Fatalf("play request not captured: %+v", st)
	}
	if rec.PlayURL == "" {
		t.Error("PlayURL missing")
	}
	if len(store.Tabs()) != 1 {
		t.Errorf("negative tab id must be ignored, tabs = %v", store.Tabs())
	}
}

func TestResolveCapturedURL(t *testing.T) {
	domID := "7591173294007651111"
	activeID := "7591173294007652222"
	latestID := "7591173294007653333"

	setup := func() *Store {
		store := NewStore(WithClock(fakeClock()))
		store.Upsert(1, Patch{ItemID: String(domID), PageURL: String(pageURL(domID))})
		store.Upsert(1, Patch{ItemID: String(activeID), PageURL: String(pageURL(activeID))})
		store.Upsert(1, Patch{ItemID: String(latestID), PageURL: String(pageURL(latestID))})
		store.Upsert(1, Patch{ActiveItemID: String(activeID)})
		return store
	}

	t.Run("dom candidate's record wins", func(t *testing.T) {
		got := setup().ResolveCapturedURL(1, pageURL(domID)+"?lang=en")
		if got != pageURL(domID) {
			t.Errorf("got %q, want dom record page URL", got)
		}
	})

	t.Run("active item beats latest", func(t *testing.T) {
		got := setup().ResolveCapturedURL(1, "")
		if got != pageURL(activeID) {
			t.Errorf("got %q, want active record page URL", got)
		}
	})

	t.Run("latest is the last resort", func(t *testing.T) {
		store := NewStore(WithClock(fakeClock()))
		store.Upsert(1, Patch{ItemID: String(latestID), PageURL: String(pageURL(latestID))})
		got := store.ResolveCapturedURL(1, "")
		if got != pageURL(latestID) {
			t.Errorf("got %q, want latest page URL", got)
		}
	})

	t.Run("unknown tab yields empty", func(t *testing.T) {
		store := NewStore(WithClock(fakeClock()))
		if got := store.ResolveCapturedURL(9, ""); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}
