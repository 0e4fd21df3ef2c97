package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.ResyncInterval != 30*time.Second {
		t.Errorf("ResyncInterval = %v, want 30s", cfg.ResyncInterval)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	content := `
addr: ":9090"
backend_url: "https://comp.example.org"
log_level: debug
session_ttl: 2h
resync_interval: 1m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.BackendURL != "https://comp.example.org" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
	// Unset keys keep defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_ADDR", ":7070")
	t.Setenv("PORTAL_RESYNC_INTERVAL", "45s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if cfg.ResyncInterval != 45*time.Second {
		t.Errorf("ResyncInterval = %v, want 45s", cfg.ResyncInterval)
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	if err := os.WriteFile(path, []byte("session_ttl: -1h\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative session_ttl")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/portal.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
