package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewUsesExplicitValues(t *testing.T) {
	cfg, err := New("/tmp/custom", "http://example.com/api")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != "/tmp/custom" {
		t.Errorf("Dir = %q", cfg.Dir)
	}
	if cfg.ServerURL != "http://example.com/api" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
}

func TestNewServerURLFallbacks(t *testing.T) {
	t.Setenv(ServerEnv, "")
	cfg, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}

	t.Setenv(ServerEnv, "http://env-host/api")
	cfg, err = New(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "http://env-host/api" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
}

func TestDefaultConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("DefaultConfigDir() = %q", got)
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/tmp/td"}
	if got := cfg.TokenPath(); got != filepath.Join("/tmp/td", TokenFile) {
		t.Errorf("TokenPath() = %q", got)
	}
	if got := cfg.StatePath(); got != filepath.Join("/tmp/td", StateFile) {
		t.Errorf("StatePath() = %q", got)
	}
}

func TestEnsureDirAndHasToken(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", AppName)
	cfg := &Config{Dir: dir}

	if cfg.HasToken() {
		t.Error("HasToken() = true before any write")
	}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("dir mode = %v, want 0700", info.Mode().Perm())
	}

	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("HasToken() = false after write")
	}
}
