package config

import (
	"errors"
	"strings"

	"github.com/clipsend/clipsend/internal/core/crypto"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
)

// DefaultAuthorName is used when the config carries no author name.
const DefaultAuthorName = "LiveChat Extension"

var (
	ErrMissingAPIURL  = errors.New("API_URL est obligatoire.")
	ErrMissingToken   = errors.New("INGEST_API_TOKEN est obligatoire.")
	ErrMissingGuildID = errors.New("guildId est obligatoire.")
)

// Settings is the validated, ready-to-use form of APISettings. APIURL is
// normalized (scheme+host+base path, no trailing slash) and AuthorName is
// never empty.
type Settings struct {
	APIURL      string
	IngestToken string
	GuildID     string
	AuthorName  string
	AuthorImage string
}

// NormalizeSettings validates and normalizes raw settings. Validation order is
// fixed: URL, then token, then guild id, so the first missing field wins.
func NormalizeSettings(raw APISettings) (*Settings, error) {
	rawURL := strings.TrimSpace(raw.URL)
	if rawURL == "" {
		return nil, ErrMissingAPIURL
	}
	apiURL, err := urlnorm.NormalizeAPIBaseURL(rawURL)
	if err != nil {
		return nil, err
	}

	token := strings.TrimSpace(raw.IngestToken)
	if token == "" {
		return nil, ErrMissingToken
	}

	guildID := strings.TrimSpace(raw.GuildID)
	if guildID == "" {
		return nil, ErrMissingGuildID
	}

	authorName := strings.TrimSpace(raw.AuthorName)
	if authorName == "" {
		authorName = DefaultAuthorName
	}

	return &Settings{
		APIURL:      apiURL,
		IngestToken: token,
		GuildID:     guildID,
		AuthorName:  authorName,
		AuthorImage: strings.TrimSpace(raw.AuthorImage),
	}, nil
}

// TokenEncrypted reports whether the stored token needs a PIN to unlock.
func (c *Config) TokenEncrypted() bool {
	return c.API.EncryptedToken != "" && c.API.IngestToken == ""
}

// DecryptToken unlocks the encrypted token with the given PIN and returns a
// copy of the API settings with the clear token filled in. The config on disk
// is left untouched.
func (c *Config) DecryptToken(pin string) (APISettings, error) {
	api := c.API
	if !c.TokenEncrypted() {
		return api, nil
	}
	token, err := crypto.DecryptToken(api.EncryptedToken, pin)
	if err != nil {
		return api, err
	}
	api.IngestToken = token
	api.EncryptedToken = ""
	return api, nil
}

// Settings validates the config's API section. Fails with ErrMissingToken when
// the token is encrypted; callers that hold a PIN should go through
// DecryptToken first.
func (c *Config) Settings() (*Settings, error) {
	return NormalizeSettings(c.API)
}

// LoadSettings loads the config file and validates its API section in one
// step.
func LoadSettings() (*Settings, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	return cfg.Settings()
}
