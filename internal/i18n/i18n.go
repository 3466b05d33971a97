package i18n

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localesFS embed.FS

// Translations holds all translation strings organized by section
type Translations struct {
	Send   SendTranslations   `yaml:"send"`
	Config ConfigTranslations `yaml:"config"`
	Server ServerTranslations `yaml:"server"`
	Pair   PairTranslations   `yaml:"pair"`
	Errors ErrorTranslations  `yaml:"errors"`
}

type SendTranslations struct {
	Sending        string `yaml:"sending"`
	Sent           string `yaml:"sent"`
	SentWithJob    string `yaml:"sent_with_job"`
	DraftSaved     string `yaml:"draft_saved"`
	DraftCleared   string `yaml:"draft_cleared"`
	NoDraft        string `yaml:"no_draft"`
	ComposePrompt  string `yaml:"compose_prompt"`
	ResolvedTarget string `yaml:"resolved_target"`
}

type ConfigTranslations struct {
	Saved          string `yaml:"saved"`
	NotFound       string `yaml:"not_found"`
	RunInitHint    string `yaml:"run_init_hint"`
	Created        string `yaml:"created"`
	TokenPrompt    string `yaml:"token_prompt"`
	PinPrompt      string `yaml:"pin_prompt"`
	TokenEncrypted string `yaml:"token_encrypted"`
	UnknownKey     string `yaml:"unknown_key"`
}

type ServerTranslations struct {
	Starting        string `yaml:"starting"`
	Stopped         string `yaml:"stopped"`
	NotRunning      string `yaml:"not_running"`
	AlreadyRunning  string `yaml:"already_running"`
	NoConfigWarning string `yaml:"no_config_warning"`
	RunInitHint     string `yaml:"run_init_hint"`
}

type PairTranslations struct {
	Prompt    string `yaml:"prompt"`
	Exchanged string `yaml:"exchanged"`
	Failed    string `yaml:"failed"`
}

type ErrorTranslations struct {
	InvalidURL       string `yaml:"invalid_url"`
	InvalidTikTokURL string `yaml:"invalid_tiktok_url"`
	SettingsMissing  string `yaml:"settings_missing"`
	Unauthorized     string `yaml:"unauthorized"`
	NetworkTimeout   string `yaml:"network_timeout"`
	NetworkError     string `yaml:"network_error"`
}

var (
	translationsCache = make(map[string]*Translations)
	cacheMutex        sync.RWMutex
	defaultLang       = "fr"
)

// SupportedLanguages returns all available language codes
var SupportedLanguages = []struct {
	Code string
	Name string
}{
	{"fr", "Français"},
	{"en", "English"},
}

// GetTranslations returns translations for the specified language
func GetTranslations(lang string) *Translations {
	cacheMutex.RLock()
	if t, ok := translationsCache[lang]; ok {
		cacheMutex.RUnlock()
		return t
	}
	cacheMutex.RUnlock()

	t, err := loadTranslations(lang)
	if err != nil {
		// Fall back to French
		if lang != defaultLang {
			return GetTranslations(defaultLang)
		}
		return &Translations{}
	}

	cacheMutex.Lock()
	translationsCache[lang] = t
	cacheMutex.Unlock()

	return t
}

func loadTranslations(lang string) (*Translations, error) {
	filename := fmt.Sprintf("locales/%s.yml", lang)
	data, err := localesFS.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var t Translations
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// T is a convenience function for getting translations
func T(lang string) *Translations {
	return GetTranslations(lang)
}
