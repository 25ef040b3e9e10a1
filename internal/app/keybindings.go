package app

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

const (
	KeyCommandQuit             = "ui.quit"
	KeyCommandSubmit           = "input.submit"
	KeyCommandScrollUp         = "chat.scrollUp"
	KeyCommandScrollDown       = "chat.scrollDown"
	KeyCommandPageUp           = "chat.pageUp"
	KeyCommandPageDown         = "chat.pageDown"
	KeyCommandTop              = "chat.top"
	KeyCommandBottom           = "chat.bottom"
	KeyCommandClear            = "chat.clear"
	KeyCommandCopyLast         = "chat.copyLast"
	KeyCommandToggleTheme      = "ui.toggleTheme"
	KeyCommandToggleFollow     = "chat.toggleFollow"
	KeyCommandToggleTimestamps = "ui.toggleTimestamps"
)

var defaultKeybindingByCommand = map[string]string{
	KeyCommandQuit:             "ctrl+c",
	KeyCommandSubmit:           "enter",
	KeyCommandScrollUp:         "up",
	KeyCommandScrollDown:       "down",
	KeyCommandPageUp:           "pgup",
	KeyCommandPageDown:         "pgdown",
	KeyCommandTop:              "ctrl+home",
	KeyCommandBottom:           "ctrl+end",
	KeyCommandClear:            "ctrl+l",
	KeyCommandCopyLast:         "ctrl+y",
	KeyCommandToggleTheme:      "ctrl+t",
	KeyCommandToggleFollow:     "ctrl+f",
	KeyCommandToggleTimestamps: "ctrl+s",
}

type Keybindings struct {
	byCommand map[string]string
}

type keybindingEntry struct {
	Command string `json:"command"`
	Key     string `json:"key"`
}

func DefaultKeybindings() *Keybindings {
	return NewKeybindings(nil)
}

// NewKeybindings applies overrides on top of the defaults. Unknown commands
// and blank keys are ignored.
func NewKeybindings(overrides map[string]string) *Keybindings {
	byCommand := make(map[string]string, len(defaultKeybindingByCommand))
	for command, key := range defaultKeybindingByCommand {
		byCommand[command] = key
	}
	for command, key := range overrides {
		command = strings.TrimSpace(command)
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := defaultKeybindingByCommand[command]; !ok {
			continue
		}
		byCommand[command] = key
	}
	return &Keybindings{byCommand: byCommand}
}

func LoadKeybindings(path string) (*Keybindings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultKeybindings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultKeybindings(), nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return DefaultKeybindings(), nil
	}
	overrides, err := parseKeybindingOverrides(data)
	if err != nil {
		return nil, err
	}
	return NewKeybindings(overrides), nil
}

func (k *Keybindings) KeyFor(command string) string {
	command = strings.TrimSpace(command)
	if k != nil {
		if key := strings.TrimSpace(k.byCommand[command]); key != "" {
			return key
		}
	}
	return defaultKeybindingByCommand[command]
}

func (k *Keybindings) Bindings() map[string]string {
	out := make(map[string]string, len(defaultKeybindingByCommand))
	for _, command := range KnownKeybindingCommands() {
		out[command] = k.KeyFor(command)
	}
	return out
}

// Binding returns the key.Binding for command. Bound keys may list
// alternatives separated by commas.
func (k *Keybindings) Binding(command string) key.Binding {
	keys := []string{}
	for _, part := range strings.Split(k.KeyFor(command), ",") {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...))
}

func (k *Keybindings) Matches(msg tea.KeyPressMsg, command string) bool {
	return key.Matches(msg, k.Binding(command))
}

// Command resolves msg to the first bound command in sorted order, or "".
func (k *Keybindings) Command(msg tea.KeyPressMsg) string {
	for _, command := range KnownKeybindingCommands() {
		if k.Matches(msg, command) {
			return command
		}
	}
	return ""
}

func parseKeybindingOverrides(data []byte) (map[string]string, error) {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, nil
	}
	out := map[string]string{}
	if data[0] == '[' {
		var entries []keybindingEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		for _, entry := range entries {
			out[entry.Command] = entry.Key
		}
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func KnownKeybindingCommands() []string {
	keys := make([]string, 0, len(defaultKeybindingByCommand))
	for command := range defaultKeybindingByCommand {
		keys = append(keys, command)
	}
	sort.Strings(keys)
	return keys
}
