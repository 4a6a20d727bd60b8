package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Analysis.ShortWindow != 10 || cfg.Analysis.LongWindow != 30 {
		t.Fatalf("unexpected windows: %d/%d", cfg.Analysis.ShortWindow, cfg.Analysis.LongWindow)
	}
	if cfg.Analysis.DefaultRange != "1-year" {
		t.Fatalf("unexpected default range: %s", cfg.Analysis.DefaultRange)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if len(cfg.Watchlist.Symbols) != 2 || cfg.Watchlist.Symbols[1] != "MSFT" {
		t.Fatalf("unexpected watchlist: %+v", cfg.Watchlist.Symbols)
	}
	if cfg.Watchlist.Range != "2-years" {
		t.Fatalf("unexpected watchlist range: %s", cfg.Watchlist.Range)
	}
	if !cfg.TelegramEnabled() {
		t.Fatalf("expected telegram enabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("fixture should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Analysis.ShortWindow != 20 || cfg.Analysis.LongWindow != 50 {
		t.Errorf("expected 20/50 default windows, got %d/%d", cfg.Analysis.ShortWindow, cfg.Analysis.LongWindow)
	}
	if cfg.Analysis.DefaultRange != "6-months" {
		t.Errorf("unexpected default range %s", cfg.Analysis.DefaultRange)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("unexpected http addr %s", cfg.HTTP.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHORT_WINDOW", "5")
	t.Setenv("LONG_WINDOW", "15")
	t.Setenv("WATCHLIST", " aapl, ,tsla ")
	t.Setenv("HTTP_ADDR", ":7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Analysis.ShortWindow != 5 || cfg.Analysis.LongWindow != 15 {
		t.Errorf("unexpected windows %d/%d", cfg.Analysis.ShortWindow, cfg.Analysis.LongWindow)
	}
	if len(cfg.Watchlist.Symbols) != 2 || cfg.Watchlist.Symbols[0] != "AAPL" || cfg.Watchlist.Symbols[1] != "TSLA" {
		t.Errorf("unexpected watchlist %+v", cfg.Watchlist.Symbols)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Errorf("unexpected addr %s", cfg.HTTP.Addr)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("analysis: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join("testdata", "config.yaml"))
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		return cfg
	}
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"short window zero", func(c *Config) { c.Analysis.ShortWindow = 0 }},
		{"long not above short", func(c *Config) { c.Analysis.LongWindow = c.Analysis.ShortWindow }},
		{"unknown default range", func(c *Config) { c.Analysis.DefaultRange = "3-weeks" }},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }},
		{"half telegram", func(c *Config) { c.Telegram.ChatID = "" }},
		{"manual watchlist range", func(c *Config) { c.Watchlist.Range = "manual" }},
		{"bad cron", func(c *Config) { c.Watchlist.Cron = "every day" }},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
