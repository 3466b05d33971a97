package crypto

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := EncryptToken("ingest-token-secret", "1234")
	if err != nil {
		t.Fatalf("EncryptToken: %v", err)
	}
	if encrypted == "ingest-token-secret" {
		t.Fatal("token stored in the clear")
	}

	token, err := DecryptToken(encrypted, "1234")
	if err != nil {
		t.Fatalf("DecryptToken: %v", err)
	}
	if token != "ingest-token-secret" {
		t.Errorf("got %q, want original token", token)
	}
}

func TestDecryptWrongPIN(t *testing.T) {
	encrypted, err := EncryptToken("ingest-token-secret", "1234")
	if err != nil {
		t.Fatalf("EncryptToken: %v", err)
	}

	if _, err := DecryptToken(encrypted, "4321"); err != ErrDecryptionFailed {
		t.Errorf("got %v, want ErrDecryptionFailed", err)
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin   string
		valid bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidatePIN(tt.pin)
		if tt.valid && err != nil {
			t.Errorf("ValidatePIN(%q) = %v, want nil", tt.pin, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ValidatePIN(%q) = nil, want error", tt.pin)
		}
	}
}

func TestDecryptMalformedData(t *testing.T) {
	if _, err := DecryptToken("not-base64!!", "1234"); err != ErrInvalidData {
		t.Errorf("got %v, want ErrInvalidData", err)
	}
	if _, err := DecryptToken("c2hvcnQ=", "1234"); err != ErrInvalidData {
		t.Errorf("got %v, want ErrInvalidData", err)
	}
}
