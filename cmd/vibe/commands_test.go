package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"vibe/internal/app"
	"vibe/internal/store"
	"vibe/internal/types"
)

var fixedNow = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func withTempHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)
	return home
}

func TestBuildCommandsRegistersSubcommands(t *testing.T) {
	commands := buildCommands(defaultCommandWiring(&bytes.Buffer{}, &bytes.Buffer{}))
	for _, name := range []string{"chat", "config", "version"} {
		if _, ok := commands[name]; !ok {
			t.Fatalf("expected %s command", name)
		}
	}
}

func TestChatCommandBuildsOptions(t *testing.T) {
	home := withTempHome(t)
	transcript := filepath.Join(t.TempDir(), "chat.md")
	if err := os.WriteFile(transcript, []byte("user: hi\n---\nhello back"), 0o600); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	var got app.Options
	cmd := NewChatCommand(&bytes.Buffer{}, func(ctx context.Context, opts app.Options) error {
		got = opts
		return nil
	}, func() time.Time { return fixedNow })

	if err := cmd.Run([]string{"--file", transcript, "--demo", "3"}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(got.Messages) != 5 {
		t.Fatalf("expected transcript plus demo messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != types.MessageRoleUser || got.Messages[1].Text != "hello back" {
		t.Fatalf("unexpected transcript messages %+v", got.Messages[:2])
	}
	if got.EstimateHeight != 6 || got.Buffer != 40 || got.Theme != "dark" || !got.Follow {
		t.Fatalf("unexpected defaults %+v", got)
	}
	if got.Store == nil || got.Store.Backend() != store.BackendBbolt || got.Keybindings == nil {
		t.Fatalf("expected store and keybindings wired")
	}
	if _, err := os.Stat(filepath.Join(home, ".vibe", "ui.log")); err != nil {
		t.Fatalf("expected ui log created: %v", err)
	}
}

func TestChatCommandAppliesPersistedState(t *testing.T) {
	home := withTempHome(t)
	statePath := filepath.Join(home, ".vibe", "state.db")
	stateStore, err := store.Open(store.BackendBbolt, statePath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	state := &types.UIState{Theme: "light"}
	state.SetFollow(false)
	if err := stateStore.Save(context.Background(), state); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = stateStore.Close()

	var got app.Options
	cmd := NewChatCommand(&bytes.Buffer{}, func(ctx context.Context, opts app.Options) error {
		got = opts
		return nil
	}, nil)
	if err := cmd.Run(nil); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if got.Theme != "light" || got.Follow {
		t.Fatalf("expected persisted preferences, got theme=%q follow=%v", got.Theme, got.Follow)
	}
}

func TestChatCommandUsesConfigFile(t *testing.T) {
	withTempHome(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[virtualization]\nestimate_height = 4\nbuffer = 12\n\n[store]\nbackend = \"file\"\npath = \"prefs.json\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var got app.Options
	cmd := NewChatCommand(&bytes.Buffer{}, func(ctx context.Context, opts app.Options) error {
		got = opts
		return nil
	}, nil)
	if err := cmd.Run([]string{"--config", configPath}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if got.EstimateHeight != 4 || got.Buffer != 12 {
		t.Fatalf("unexpected virtualization options %+v", got)
	}
	if got.Store == nil || got.Store.Backend() != store.BackendFile {
		t.Fatalf("expected file store backend")
	}
}

func TestChatCommandRejectsBadFlags(t *testing.T) {
	withTempHome(t)
	cmd := NewChatCommand(&bytes.Buffer{}, func(context.Context, app.Options) error { return nil }, nil)
	if err := cmd.Run([]string{"--demo", "-1"}); err == nil {
		t.Fatalf("expected negative demo error")
	}
	if err := cmd.Run([]string{"--file", filepath.Join(t.TempDir(), "missing.md")}); err == nil {
		t.Fatalf("expected missing transcript error")
	}
	if err := cmd.Run([]string{"--bogus"}); err == nil {
		t.Fatalf("expected flag parse error")
	}
}

func TestConfigCommandJSON(t *testing.T) {
	home := withTempHome(t)
	stdout := &bytes.Buffer{}
	if err := NewConfigCommand(stdout, &bytes.Buffer{}).Run(nil); err != nil {
		t.Fatalf("config: %v", err)
	}
	var out configOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout.String())
	}
	if out.ConfigPath != filepath.Join(home, ".vibe", "config.toml") {
		t.Fatalf("unexpected config path %q", out.ConfigPath)
	}
	if out.Virtualization.EstimateHeight != 6 || out.Virtualization.Buffer != 40 {
		t.Fatalf("unexpected virtualization %+v", out.Virtualization)
	}
	if out.Store.Path != filepath.Join(home, ".vibe", "state.db") || out.Store.Backend != "bbolt" {
		t.Fatalf("unexpected store %+v", out.Store)
	}
	if out.Keybindings[app.KeyCommandCopyLast] != "ctrl+y" {
		t.Fatalf("expected default keybindings in output")
	}
}

func TestConfigCommandTOMLDefaults(t *testing.T) {
	withTempHome(t)
	stdout := &bytes.Buffer{}
	if err := NewConfigCommand(stdout, &bytes.Buffer{}).Run([]string{"--default", "--format", "toml"}); err != nil {
		t.Fatalf("config: %v", err)
	}
	var out configOutput
	if err := toml.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode toml: %v\n%s", err, stdout.String())
	}
	if out.UI.Theme != "dark" || !out.UI.Follow || out.Logging.Level != "info" {
		t.Fatalf("unexpected defaults %+v", out)
	}
	if err := NewConfigCommand(&bytes.Buffer{}, &bytes.Buffer{}).Run([]string{"--format", "yaml"}); err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	if err := NewVersionCommand(stdout, "abc123").Run(nil); err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "abc123" {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}
