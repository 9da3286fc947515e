package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/sp-probables/internal/scraper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probables.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no probables.yaml is picked up
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want %+v", *cfg, *want)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
url: https://example.test/grid
timeout: 5s
attempts: 3
retry_delay: 250ms
listen_addr: 127.0.0.1:9090
log_level: debug
max_window_days: 14
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.URL != "https://example.test/grid" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", cfg.Attempts)
	}
	if cfg.RetryDelay != 250*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 250ms", cfg.RetryDelay)
	}
	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.MaxWindowDays != 14 {
		t.Errorf("MaxWindowDays = %d, want 14", cfg.MaxWindowDays)
	}
	if cfg.UserAgent != scraper.UserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "url: https://example.test/grid\n")
	t.Setenv("PROBABLES_URL", "https://override.test/grid")
	t.Setenv("PROBABLES_ATTEMPTS", "4")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.URL != "https://override.test/grid" {
		t.Errorf("URL = %q, want env override", cfg.URL)
	}
	if cfg.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", cfg.Attempts)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad url", "url: not-a-url\n"},
		{"zero attempts", "attempts: 0\n"},
		{"negative timeout", "timeout: -1s\n"},
		{"unknown log level", "log_level: chatty\n"},
		{"negative window", "max_window_days: -2\n"},
		{"malformed yaml", "url: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestScraperOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Attempts = 2

	opts := cfg.ScraperOptions()
	if opts.URL != cfg.URL || opts.Attempts != 2 || opts.Timeout != cfg.Timeout {
		t.Errorf("ScraperOptions() = %+v", opts)
	}
}
