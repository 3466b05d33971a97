package urlnorm

import (
	"net/url"
	"testing"
)

func TestNormalizeYouTube(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short link",
			input:    "https://youtu.be/abc123",
			expected: "https://www.youtube.com/watch?v=abc123",
		},
		{
			name:     "watch URL with tracking params",
			input:    "https://www.youtube.com/watch?v=abc123&feature=share&si=xyz",
			expected: "https://www.youtube.com/watch?v=abc123",
		},
		{
			name:     "watch URL keeps timestamp",
			input:    "https://www.youtube.com/watch?v=abc123&t=90s",
			expected: "https://www.youtube.com/watch?v=abc123&t=90s",
		},
		{
			name:     "mobile host",
			input:    "https://m.youtube.com/watch?v=abc123",
			expected: "https://www.youtube.com/watch?v=abc123",
		},
		{
			name:     "shorts keeps path segment only",
			input:    "https://www.youtube.com/shorts/xyz789?igshid=1",
			expected: "https://www.youtube.com/shorts/xyz789",
		},
		{
			name:     "short link with empty id",
			input:    "https://youtu.be/",
			expected: "",
		},
		{
			name:     "watch URL without video id",
			input:    "https://www.youtube.com/feed/subscriptions",
			expected: "",
		},
		{
			name:     "look-alike host",
			input:    "https://notyoutube.com/watch?v=abc123",
			expected: "",
		},
		{
			name:     "non-http scheme",
			input:    "ftp://www.youtube.com/watch?v=abc123",
			expected: "",
		},
		{
			name:     "relative path without base",
			input:    "/watch?v=abc123",
			expected: "",
		},
		{
			name:     "not a URL",
			input:    "definitely not a url",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeYouTube(tt.input, nil); got != tt.expected {
				t.Errorf("NormalizeYouTube(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeYouTubeWithBase(t *testing.T) {
	base, err := url.Parse("https://www.youtube.com/feed/subscriptions")
	if err != nil {
		t.Fatalf("parse base: %v", err)
	}

	got := NormalizeYouTube("/watch?v=abc123", base)
	want := "https://www.youtube.com/watch?v=abc123"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeYouTubeDeterministic(t *testing.T) {
	// Different surface forms of the same video must normalize to the
	// identical string.
	forms := []string{
		"https://youtu.be/abc123",
		"https://www.youtube.com/watch?v=abc123&feature=share",
		"https://m.youtube.com/watch?v=abc123#comments",
		"  https://youtube.com/watch?v=abc123  ",
	}

	want := "https://www.youtube.com/watch?v=abc123"
	for _, form := range forms {
		if got := NormalizeYouTube(form, nil); got != want {
			t.Errorf("NormalizeYouTube(%q) = %q, want %q", form, got, want)
		}
	}
}
