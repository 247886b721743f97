package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("REM_DATA_DIR", "")
	t.Setenv("REM_TODAY", "")

	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Dir != dir {
		t.Errorf("expected Dir %q, got %q", dir, cfg.Dir)
	}
	want := filepath.Join(data, "rem", "rem.json")
	if cfg.DataPath() != want {
		t.Errorf("expected data path %q, got %q", want, cfg.DataPath())
	}
	if cfg.Today != "" {
		t.Errorf("expected no pinned date, got %q", cfg.Today)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	t.Setenv("REM_DATA_DIR", "")
	t.Setenv("REM_TODAY", "")

	dir := t.TempDir()
	content := "data_dir: /srv/rem\ntoday: \"2024-03-10\"\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataPath() != filepath.Join("/srv/rem", DataFile) {
		t.Errorf("unexpected data path %q", cfg.DataPath())
	}
	if cfg.Today != "2024-03-10" {
		t.Errorf("expected today from config file, got %q", cfg.Today)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("data_dir: /from/file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REM_DATA_DIR", "/from/env")
	t.Setenv("REM_TODAY", "2025-01-01")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("expected env data dir, got %q", cfg.DataDir)
	}
	if cfg.Today != "2025-01-01" {
		t.Errorf("expected env date, got %q", cfg.Today)
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("data_dir: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(dir); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestDataPath_FileOverride(t *testing.T) {
	cfg := &Config{DataDir: "/data", File: "/tmp/other.json"}
	if cfg.DataPath() != "/tmp/other.json" {
		t.Errorf("expected file override, got %q", cfg.DataPath())
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/xdg", AppName) {
		t.Errorf("unexpected config dir %q", got)
	}
}
