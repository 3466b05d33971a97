package cli

import (
	"testing"

	"github.com/clipsend/clipsend/internal/config"
)

func TestSetConfigValue(t *testing.T) {
	cfg := config.DefaultConfig()

	if err := setConfigValue(cfg, "api.url", "https://api.example.com/livechat/"); err != nil {
		t.Fatalf("set api.url: %v", err)
	}
	if cfg.API.URL != "https://api.example.com/livechat" {
		t.Errorf("api.url = %q, want normalized", cfg.API.URL)
	}

	if err := setConfigValue(cfg, "server.port", "9000"); err != nil {
		t.Fatalf("set server.port: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}

	if err := setConfigValue(cfg, "server.port", "abc"); err == nil {
		t.Error("non-numeric port should fail")
	}
	if err := setConfigValue(cfg, "api.url", "ftp://nope"); err == nil {
		t.Error("non-http api.url should fail")
	}
	if err := setConfigValue(cfg, "bogus.key", "x"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestGetAndUnsetConfigValue(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.GuildID = "g1"

	got, err := getConfigValue(cfg, "api.guild_id")
	if err != nil || got != "g1" {
		t.Errorf("get api.guild_id = %q, %v", got, err)
	}

	if err := unsetConfigValue(cfg, "api.guild_id"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if cfg.API.GuildID != "" {
		t.Errorf("guild id not cleared: %q", cfg.API.GuildID)
	}

	cfg.API.IngestToken = "tok"
	cfg.API.EncryptedToken = "enc"
	if err := unsetConfigValue(cfg, "api.token"); err != nil {
		t.Fatalf("unset api.token: %v", err)
	}
	if cfg.API.IngestToken != "" || cfg.API.EncryptedToken != "" {
		t.Error("api.token should clear both token forms")
	}

	if _, err := getConfigValue(cfg, "bogus.key"); err == nil {
		t.Error("unknown key should fail")
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("secret-token-value"); got != "secr...alue" {
		t.Errorf("maskToken = %q", got)
	}
	if got := maskToken("short"); got != "********" {
		t.Errorf("short token mask = %q", got)
	}
}
