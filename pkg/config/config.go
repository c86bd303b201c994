// Package config loads the TOML configuration file governing lookup
// behavior, import parallelism, and the ancillary serve daemon.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LookupConfig controls the prefix-scan and ranking behavior of pkg/lookup.
type LookupConfig struct {
	ScanLength int `toml:"scan_length"`
	MaxResults int `toml:"max_results"`
}

// ImportConfig controls pkg/dictimport's worker pool and compression level.
type ImportConfig struct {
	WorkerCount int `toml:"worker_count"`
	ZstdLevel   int `toml:"zstd_level"`
}

// ServerConfig controls the ancillary pkg/ipc daemon started by `kotoba serve`.
type ServerConfig struct {
	LogLevel string `toml:"log_level"`
}

// Config is the top-level configuration, matching the [lookup]/[import]/
// [server] table layout.
type Config struct {
	Lookup LookupConfig `toml:"lookup"`
	Import ImportConfig `toml:"import"`
	Server ServerConfig `toml:"server"`
}

// Default returns the configuration used when no file is present or when a
// file fails to parse, matching spec.md §7's "programmer errors treated as
// zero/default" policy.
func Default() *Config {
	return &Config{
		Lookup: LookupConfig{
			ScanLength: 16,
			MaxResults: 50,
		},
		Import: ImportConfig{
			WorkerCount: 0, // 0 means runtime.NumCPU() at call time
			ZstdLevel:   3,
		},
		Server: ServerConfig{
			LogLevel: "info",
		},
	}
}

// Load reads a TOML file at path, falling back to Default() on any error
// (missing file, parse failure) after logging a warning, matching the
// teacher's load-with-fallback discipline.
func Load(path string) *Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("config: could not read %s, using defaults: %v", path, err)
		}
		return cfg
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		log.Warnf("config: could not parse %s, using defaults: %v", path, err)
		return Default()
	}
	cfg.applyDefaultsForZero()
	return cfg
}

// applyDefaultsForZero fills in zero-valued fields left unset by a partial
// TOML file, so a config that only overrides one table doesn't zero out the
// rest.
func (c *Config) applyDefaultsForZero() {
	d := Default()
	if c.Lookup.ScanLength <= 0 {
		c.Lookup.ScanLength = d.Lookup.ScanLength
	}
	if c.Lookup.MaxResults <= 0 {
		c.Lookup.MaxResults = d.Lookup.MaxResults
	}
	if c.Import.ZstdLevel <= 0 {
		c.Import.ZstdLevel = d.Import.ZstdLevel
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = d.Server.LogLevel
	}
}

// Save writes cfg to path as TOML. The parent directory must already exist;
// Save does not create it.
func Save(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// ParseLevel converts the server's log_level string into a charmbracelet/log
// level, defaulting to Info on an unrecognized value.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
