// Package pathutil resolves the config directory and validates bundle
// directories, following the same executable-relative-with-fallbacks
// discipline as a typical CLI tool's path resolver.
package pathutil

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/kotobaserve/kotoba/internal/logging"
)

var log = logging.New("pathutil")

// Resolver locates config files in the platform config directory, falling
// back to $HOME/.kotoba, a temp directory, and the running executable's
// directory, in that order.
type Resolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewResolver builds a Resolver from the current process's executable path
// and home directory.
func NewResolver() (*Resolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	return &Resolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     platformConfigDir(homeDir),
	}, nil
}

// platformConfigDir mirrors the conventional per-OS config directory.
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "kotoba")
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "kotoba")
		}
		return filepath.Join(homeDir, ".config", "kotoba")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "kotoba")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "kotoba")
	default:
		return filepath.Join(homeDir, ".kotoba")
	}
}

// ConfigDir returns the resolved config directory.
func (r *Resolver) ConfigDir() string { return r.configDir }

// ConfigPath returns the full path for a named config file, ensuring its
// directory exists (and falling back to $HOME/.kotoba, then a temp
// directory, then the executable directory, if the preferred config
// directory is not writable).
func (r *Resolver) ConfigPath(filename string) (string, error) {
	if r.ensureWritable(r.configDir) {
		return filepath.Join(r.configDir, filename), nil
	}
	fallbacks := []string{
		filepath.Join(r.homeDir, ".kotoba"),
		filepath.Join(os.TempDir(), "kotoba"),
		r.executableDir,
	}
	for _, dir := range fallbacks {
		if r.ensureWritable(dir) {
			log.Warnf("using fallback config location: %s", dir)
			return filepath.Join(dir, filename), nil
		}
	}
	return filepath.Join(os.TempDir(), filename), nil
}

func (r *Resolver) ensureWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return false
	}
	os.Remove(probe)
	return true
}

// IsBundleDir reports whether path looks like a mounted dictionary bundle
// directory (contains info.json and offsets.bin).
func IsBundleDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, required := range []string{"info.json", "offsets.bin"} {
		if _, err := os.Stat(filepath.Join(path, required)); err != nil {
			return false
		}
	}
	return true
}
