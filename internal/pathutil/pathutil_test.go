package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewResolver(t *testing.T) {
	r, err := NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if r.ConfigDir() == "" {
		t.Fatal("expected non-empty config dir")
	}
}

func TestConfigPathWritesToWritableDir(t *testing.T) {
	tmp := t.TempDir()
	r := &Resolver{
		executableDir: tmp,
		homeDir:       tmp,
		configDir:     filepath.Join(tmp, "prefdir"),
	}
	path, err := r.ConfigPath("config.toml")
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	want := filepath.Join(tmp, "prefdir", "config.toml")
	if path != want {
		t.Fatalf("got %q, want %q", path, want)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected config dir to have been created: %v", err)
	}
}

func TestConfigPathFallsBackWhenPreferredUnwritable(t *testing.T) {
	tmp := t.TempDir()
	// A config dir path under a file (not a directory) can never be
	// created, forcing ensureWritable to fail and the resolver to fall
	// through to the home-dir fallback.
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	homeDir := filepath.Join(tmp, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	r := &Resolver{
		executableDir: tmp,
		homeDir:       homeDir,
		configDir:     filepath.Join(blocker, "cfg"),
	}
	path, err := r.ConfigPath("config.toml")
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	want := filepath.Join(homeDir, ".kotoba", "config.toml")
	if path != want {
		t.Fatalf("got %q, want fallback %q", path, want)
	}
}

func TestIsBundleDir(t *testing.T) {
	tmp := t.TempDir()
	if IsBundleDir(tmp) {
		t.Fatal("empty dir should not look like a bundle")
	}
	if err := os.WriteFile(filepath.Join(tmp, "info.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsBundleDir(tmp) {
		t.Fatal("missing offsets.bin, should not be a bundle yet")
	}
	if err := os.WriteFile(filepath.Join(tmp, "offsets.bin"), []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsBundleDir(tmp) {
		t.Fatal("expected dir with info.json and offsets.bin to be a bundle")
	}
}

func TestIsBundleDirRejectsFile(t *testing.T) {
	tmp := t.TempDir()
	f := filepath.Join(tmp, "notadir")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsBundleDir(f) {
		t.Fatal("a plain file should never be a bundle dir")
	}
}
