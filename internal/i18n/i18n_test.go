package i18n

import "testing"

func TestGetTranslations(t *testing.T) {
	fr := GetTranslations("fr")
	if fr.Send.Sent != "Envoyé vers LiveChat." {
		t.Errorf("fr send.sent = %q", fr.Send.Sent)
	}
	if fr.Errors.InvalidURL == "" {
		t.Error("fr errors.invalid_url missing")
	}

	en := GetTranslations("en")
	if en.Send.Sent != "Sent to LiveChat." {
		t.Errorf("en send.sent = %q", en.Send.Sent)
	}
}

func TestUnknownLanguageFallsBackToFrench(t *testing.T) {
	got := GetTranslations("xx")
	want := GetTranslations("fr")
	if got.Send.Sent != want.Send.Sent {
		t.Errorf("fallback = %q, want french", got.Send.Sent)
	}
}

func TestAllLocalesComplete(t *testing.T) {
	for _, lang := range SupportedLanguages {
		tr := GetTranslations(lang.Code)
		if tr.Send.Sent == "" || tr.Config.RunInitHint == "" || tr.Server.Starting == "" || tr.Errors.NetworkError == "" {
			t.Errorf("locale %s has empty required strings", lang.Code)
		}
	}
}
