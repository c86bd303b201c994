package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	d := Default()
	if *cfg != *d {
		t.Fatalf("got %+v, want default %+v", cfg, d)
	}
}

func TestLoadMalformedFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	d := Default()
	if *cfg != *d {
		t.Fatalf("got %+v, want default %+v", cfg, d)
	}
}

func TestLoadPartialFileBackfillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[lookup]\nmax_results = 10\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	if cfg.Lookup.MaxResults != 10 {
		t.Fatalf("expected override to apply, got %d", cfg.Lookup.MaxResults)
	}
	if cfg.Lookup.ScanLength != Default().Lookup.ScanLength {
		t.Fatalf("expected scan_length to be backfilled, got %d", cfg.Lookup.ScanLength)
	}
	if cfg.Server.LogLevel != Default().Server.LogLevel {
		t.Fatalf("expected log_level to be backfilled, got %q", cfg.Server.LogLevel)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Lookup.MaxResults = 99
	cfg.Server.LogLevel = "debug"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := Load(path)
	if loaded.Lookup.MaxResults != 99 || loaded.Server.LogLevel != "debug" {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != log.DebugLevel {
		t.Fatalf("got %v, want DebugLevel", got)
	}
	if got := ParseLevel("not-a-level"); got != log.InfoLevel {
		t.Fatalf("expected fallback to InfoLevel, got %v", got)
	}
}
