package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EstimateHeight() != 6 || cfg.Buffer() != 40 {
		t.Fatalf("unexpected virtualization defaults: %+v", cfg.Virtualization)
	}
	if cfg.Theme() != "dark" || !cfg.Follow() || cfg.UI.Timestamps {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
	if cfg.LogLevel() != "info" || cfg.StoreBackend() != StoreBackendBolt {
		t.Fatalf("unexpected logging/store defaults")
	}
}

func TestLoadFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".vibe")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte(`
[virtualization]
estimate_height = 3
buffer = 0

[ui]
theme = "LIGHT"
follow = false

[store]
backend = "json"
path = "~/elsewhere/state.json"
`)
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EstimateHeight() != 3 || cfg.Buffer() != 0 {
		t.Fatalf("unexpected virtualization: %+v", cfg.Virtualization)
	}
	if cfg.Theme() != "light" || cfg.Follow() {
		t.Fatalf("unexpected ui: theme=%q follow=%v", cfg.Theme(), cfg.Follow())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("expected untouched sections to keep defaults, got %q", cfg.LogLevel())
	}
	if cfg.StoreBackend() != StoreBackendFile {
		t.Fatalf("unexpected backend %q", cfg.StoreBackend())
	}
	path, err := cfg.ResolveStorePath()
	if err != nil {
		t.Fatalf("ResolveStorePath: %v", err)
	}
	if want := filepath.Join(home, "elsewhere", "state.json"); path != want {
		t.Fatalf("unexpected store path: got=%q want=%q", path, want)
	}
}

func TestLoadFromPathRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[virtualization\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadFromPath("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestResolveKeybindingsPath(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	cfg := Config{}
	path, err := cfg.ResolveKeybindingsPath()
	if err != nil {
		t.Fatalf("ResolveKeybindingsPath default: %v", err)
	}
	if want := filepath.Join(home, ".vibe", "keybindings.json"); path != want {
		t.Fatalf("unexpected default path: got=%q want=%q", path, want)
	}

	cfg.UI.KeybindingsPath = "ui/keys.json"
	path, err = cfg.ResolveKeybindingsPath()
	if err != nil {
		t.Fatalf("ResolveKeybindingsPath relative: %v", err)
	}
	if want := filepath.Join(home, ".vibe", "ui", "keys.json"); path != want {
		t.Fatalf("unexpected relative path: got=%q want=%q", path, want)
	}

	cfg.UI.KeybindingsPath = "/abs/keys.json"
	if path, _ = cfg.ResolveKeybindingsPath(); path != "/abs/keys.json" {
		t.Fatalf("expected absolute path untouched, got %q", path)
	}
}
