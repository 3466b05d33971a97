package urlnorm

import "testing"

func TestNormalizeAPIBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare origin",
			input:    "https://api.example.com",
			expected: "https://api.example.com",
		},
		{
			name:     "trailing slash dropped",
			input:    "https://api.example.com/",
			expected: "https://api.example.com",
		},
		{
			name:     "base path kept, trailing slashes dropped",
			input:    "https://api.example.com/livechat///",
			expected: "https://api.example.com/livechat",
		},
		{
			name:     "whitespace trimmed, fragment stripped",
			input:    "  https://api.example.com/base#frag  ",
			expected: "https://api.example.com/base",
		},
		{
			name:     "query preserved",
			input:    "https://api.example.com/base?env=prod",
			expected: "https://api.example.com/base?env=prod",
		},
		{
			name:    "missing scheme",
			input:   "api.example.com",
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			input:   "ws://api.example.com",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAPIBaseURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeAPIBaseURL(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeAPIBaseURL(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("NormalizeAPIBaseURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOriginPattern(t *testing.T) {
	got, err := OriginPattern("https://api.example.com/livechat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://api.example.com/*"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := OriginPattern("not a url"); err == nil {
		t.Error("expected error for invalid input")
	}
}
