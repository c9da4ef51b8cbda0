package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not be an error: %v", err)
	}
	if cfg.Session.Margin != nil {
		t.Fatalf("expected unset margin")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[session]
margin = 10
timeout-secs = 5
offline = true
endpoint = "http://localhost:8080/summary"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Session.Margin == nil || *cfg.Session.Margin != 10 {
		t.Fatalf("margin not decoded: %+v", cfg.Session)
	}
	if cfg.Session.TimeoutSecs == nil || *cfg.Session.TimeoutSecs != 5 {
		t.Fatalf("timeout not decoded: %+v", cfg.Session)
	}
	if cfg.Session.Offline == nil || !*cfg.Session.Offline {
		t.Fatalf("offline not decoded: %+v", cfg.Session)
	}
	if cfg.Session.Endpoint == nil || *cfg.Session.Endpoint != "http://localhost:8080/summary" {
		t.Fatalf("endpoint not decoded: %+v", cfg.Session)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
