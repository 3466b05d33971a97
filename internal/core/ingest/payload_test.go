package ingest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/clipsend/clipsend/internal/config"
)

func testSettings() *config.Settings {
	return &config.Settings{
		APIURL:      "https://api.example.com",
		IngestToken: "tok",
		GuildID:     "guild-1",
		AuthorName:  "Alice",
	}
}

func TestBuildPayloadQuick(t *testing.T) {
	payload := BuildPayload(Quick("https://youtu.be/abc123"), testSettings())
	if payload == nil {
		t.Fatal("payload is nil")
	}
	if payload.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("URL = %q", payload.URL)
	}
	if payload.GuildID != "guild-1" || payload.AuthorName != "Alice" {
		t.Errorf("identity fields: %+v", payload)
	}

	// Quick mode must not emit text or forceRefresh at all.
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "forceRefresh") || strings.Contains(string(data), "text") {
		t.Errorf("quick payload leaked compose fields: %s", data)
	}
	if strings.Contains(string(data), "authorImage") {
		t.Errorf("empty authorImage should be omitted: %s", data)
	}
}

func TestBuildPayloadCompose(t *testing.T) {
	payload := BuildPayload(Compose("https://youtu.be/abc123", "  regarde  ", true), testSettings())
	if payload == nil {
		t.Fatal("payload is nil")
	}
	if payload.Text != "regarde" {
		t.Errorf("Text = %q, want trimmed", payload.Text)
	}
	if payload.ForceRefresh == nil || !*payload.ForceRefresh {
		t.Error("ForceRefresh should be true")
	}
}

func TestBuildPayloadComposeAlwaysCarriesForceRefresh(t *testing.T) {
	payload := BuildPayload(Compose("https://youtu.be/abc123", "", false), testSettings())
	if payload == nil {
		t.Fatal("payload is nil")
	}
	if payload.Text != "" {
		t.Errorf("whitespace-only text should be dropped, got %q", payload.Text)
	}
	if payload.ForceRefresh == nil || *payload.ForceRefresh {
		t.Error("compose mode carries forceRefresh:false explicitly")
	}

	data, _ := json.Marshal(payload)
	if !strings.Contains(string(data), `"forceRefresh":false`) {
		t.Errorf("forceRefresh:false missing from wire body: %s", data)
	}
	if strings.Contains(string(data), `"text"`) {
		t.Errorf("empty text must be omitted: %s", data)
	}
}

func TestBuildPayloadInvalidURL(t *testing.T) {
	tests := []string{
		"",
		"not a url",
		"ftp://example.com/file",
		"https://www.youtube.com/feed/subscriptions",
	}
	for _, raw := range tests {
		if payload := BuildPayload(Quick(raw), testSettings()); payload != nil {
			t.Errorf("BuildPayload(%q) = %+v, want nil", raw, payload)
		}
	}
}

func TestBuildPayloadAuthorDefaults(t *testing.T) {
	st := testSettings()
	st.AuthorName = ""
	st.AuthorImage = "https://cdn.example.com/a.png"

	payload := BuildPayload(Quick("https://youtu.be/abc123"), st)
	if payload == nil {
		t.Fatal("payload is nil")
	}
	if payload.AuthorName != config.DefaultAuthorName {
		t.Errorf("AuthorName = %q, want default", payload.AuthorName)
	}
	if payload.AuthorImage != "https://cdn.example.com/a.png" {
		t.Errorf("AuthorImage = %q", payload.AuthorImage)
	}
}

func TestBuildPayloadDeterministic(t *testing.T) {
	a := BuildPayload(Quick("https://youtu.be/abc123?feature=share"), testSettings())
	b := BuildPayload(Quick("https://www.youtube.com/watch?v=abc123&utm_source=x"), testSettings())
	if a == nil || b == nil {
		t.Fatal("payloads are nil")
	}
	if a.URL != b.URL {
		t.Errorf("same content, different URLs: %q vs %q", a.URL, b.URL)
	}
}
