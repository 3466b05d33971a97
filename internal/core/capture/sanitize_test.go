package capture

import "testing"

func TestNormalizeItemID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"7591173294007651598", "7591173294007651598"},
		{" 7591173294007651598 ", "7591173294007651598"},
		{"123456789012345", "123456789012345"},
		{"1234567890123456789012", "1234567890123456789012"},
		{"12345678901234", ""},
		{"12345678901234567890123", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeItemID(tt.input); got != tt.expected {
			t.Errorf("NormalizeItemID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizePageURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "canonical video page",
			input:    "https://www.tiktok.com/@creator/video/7591173294007651598?is_from_webapp=1",
			expected: "https://www.tiktok.com/@creator/video/7591173294007651598",
		},
		{
			name:     "photo page",
			input:    "https://www.tiktok.com/@creator/photo/7591173294007651598",
			expected: "https://www.tiktok.com/@creator/photo/7591173294007651598",
		},
		{
			name:     "profile page rejected",
			input:    "https://www.tiktok.com/@creator",
			expected: "",
		},
		{
			name:     "non-tiktok host rejected",
			input:    "https://www.youtube.com/watch?v=abc123",
			expected: "",
		},
		{
			name:     "garbage rejected",
			input:    "not a url",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePageURL(tt.input); got != tt.expected {
				t.Errorf("NormalizePageURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePlayURL(t *testing.T) {
	valid := "https://www.tiktok.com/aweme/v100/play/?item_id=7591173294007651598"
	if got := NormalizePlayURL(valid); got != valid {
		t.Errorf("valid play URL rejected: %q", got)
	}
	if got := NormalizePlayURL("https://v16.tiktokcdn.com/aweme/v100/play/x"); got != "" {
		t.Errorf("wrong host accepted: %q", got)
	}
	if got := NormalizePlayURL("https://www.tiktok.com/@creator/video/7591173294007651598"); got != "" {
		t.Errorf("non-play path accepted: %q", got)
	}
}

func TestNormalizeMediaURL(t *testing.T) {
	valid := "https://v16-webapp.tiktok.com/video/tos/useast/abc/"
	if got := NormalizeMediaURL(valid); got != valid {
		t.Errorf("valid media URL rejected: %q", got)
	}
	if got := NormalizeMediaURL("https://cdn.example.com/video/tos/abc"); got != "" {
		t.Errorf("non-tiktok host accepted: %q", got)
	}
	if got := NormalizeMediaURL("https://www.tiktok.com/@creator/video/7591173294007651598"); got != "" {
		t.Errorf("non-tos path accepted: %q", got)
	}
}

func TestExtractItemID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "from path",
			input:    "https://www.tiktok.com/@creator/video/7591173294007651598",
			expected: "7591173294007651598",
		},
		{
			name:     "from item_id query",
			input:    "https://www.tiktok.com/aweme/v100/play/?item_id=7591173294007651598",
			expected: "7591173294007651598",
		},
		{
			name:     "loose digit run fallback",
			input:    "tos-useast-7591173294007651598-segment",
			expected: "7591173294007651598",
		},
		{
			name:     "short ids ignored",
			input:    "https://www.tiktok.com/@creator/video/12345",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractItemID(tt.input); got != tt.expected {
				t.Errorf("ExtractItemID(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
