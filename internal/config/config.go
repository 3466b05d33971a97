package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "clipsend"

	// EnvConfigDir overrides the config directory (tests, daemons).
	EnvConfigDir = "CLIPSEND_CONFIG_DIR"
)

// ConfigDir returns the standard config directory for clipsend.
// Windows: %APPDATA%\clipsend\
// macOS/Linux: ~/.config/clipsend/
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file,
// e.g. ~/.config/clipsend/config.yml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// Language for CLI/server messages ("fr" or "en")
	Language string `yaml:"language,omitempty"`

	// API holds the ingestion endpoint settings
	API APISettings `yaml:"api"`

	// Server configuration for `clipsend serve`
	Server ServerConfig `yaml:"server,omitempty"`
}

// APISettings is the persisted form of the ingestion settings. Exactly one of
// IngestToken and EncryptedToken should be set; EncryptedToken needs a PIN to
// unlock (see DecryptToken).
type APISettings struct {
	URL            string `yaml:"url,omitempty"`
	IngestToken    string `yaml:"ingest_token,omitempty"`
	EncryptedToken string `yaml:"encrypted_token,omitempty"`
	GuildID        string `yaml:"guild_id,omitempty"`
	AuthorName     string `yaml:"author_name,omitempty"`
	AuthorImage    string `yaml:"author_image,omitempty"`
}

// ServerConfig holds HTTP relay settings for `clipsend serve`
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8787)
	Port int `yaml:"port,omitempty"`

	// APIKey for authentication (if set, requests must include X-API-Key)
	APIKey string `yaml:"api_key,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Language: "fr",
	}
}

// Exists checks if the config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/clipsend/config.yml
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to ~/.config/clipsend/config.yml
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# clipsend configuration file\n# Run 'clipsend init' to regenerate with defaults\n\n"
	content := header + string(data)

	// Token material lives here, keep it out of other users' reach.
	return os.WriteFile(configPath, []byte(content), 0600)
}

// SavePath returns the path where config will be saved
func SavePath() string {
	if path, err := ConfigPath(); err == nil {
		return path
	}
	return ConfigFileName
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}

// LoadOrDefault loads config if it exists, otherwise returns defaults
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	return cfg
}
