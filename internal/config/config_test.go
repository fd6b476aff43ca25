package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ipsetctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
default_set = "blocklist"
retry_limit = 50
retry_interval = "20us"

[sets]
allow = "wifidog_allow"
block = "wifidog_block"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultSet != "blocklist" {
		t.Fatalf("unexpected default set: %q", cfg.DefaultSet)
	}
	if cfg.RetryLimit != 50 {
		t.Fatalf("unexpected retry limit: %d", cfg.RetryLimit)
	}
	if cfg.RetryInterval != 20*time.Microsecond {
		t.Fatalf("unexpected retry interval: %v", cfg.RetryInterval)
	}
	if cfg.BufferCapacity != 256 {
		t.Fatalf("expected default buffer capacity, got %d", cfg.BufferCapacity)
	}
	if got := cfg.ResolveSet("allow"); got != "wifidog_allow" {
		t.Fatalf("alias not resolved: %q", got)
	}
	if got := cfg.ResolveSet("adhoc"); got != "adhoc" {
		t.Fatalf("unknown name should pass through: %q", got)
	}
}

func TestLoadRejectsOverlongSetName(t *testing.T) {
	path := writeConfig(t, `
default_set = "aVeryLongSetNameThatExceedsThirtyOneCharacters"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for overlong set name")
	}
}

func TestLoadRejectsBadRetryInterval(t *testing.T) {
	path := writeConfig(t, `retry_interval = "soon"`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error for retry_interval")
	}
}

func TestValidateRejectsTinyBuffer(t *testing.T) {
	cfg := Default()
	cfg.BufferCapacity = 8
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for tiny buffer")
	}
}
