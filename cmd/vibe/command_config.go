package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"vibe/internal/app"
	"vibe/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath     string                        `json:"config_path" toml:"config_path"`
	Virtualization effectiveVirtualizationConfig `json:"virtualization" toml:"virtualization"`
	UI             effectiveUIConfig             `json:"ui" toml:"ui"`
	Logging        effectiveLoggingConfig        `json:"logging" toml:"logging"`
	Store          effectiveStoreConfig          `json:"store" toml:"store"`
	Keybindings    map[string]string             `json:"keybindings" toml:"keybindings"`
}

type effectiveVirtualizationConfig struct {
	EstimateHeight int `json:"estimate_height" toml:"estimate_height"`
	Buffer         int `json:"buffer" toml:"buffer"`
}

type effectiveUIConfig struct {
	Theme           string `json:"theme" toml:"theme"`
	Timestamps      bool   `json:"timestamps" toml:"timestamps"`
	Follow          bool   `json:"follow" toml:"follow"`
	KeybindingsPath string `json:"keybindings_path" toml:"keybindings_path"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
	File  string `json:"file" toml:"file"`
}

type effectiveStoreConfig struct {
	Backend string `json:"backend" toml:"backend"`
	Path    string `json:"path" toml:"path"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		stdout: stdout,
		stderr: stderr,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	configPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	payload, err := buildConfigOutput(*configPath, *defaults)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(configPath string, defaults bool) (configOutput, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return configOutput{}, err
		}
	}
	cfg, err := loadConfig(configPath, defaults)
	if err != nil {
		return configOutput{}, err
	}
	keybindingsPath, err := cfg.ResolveKeybindingsPath()
	if err != nil {
		return configOutput{}, err
	}
	logPath, err := cfg.ResolveLogPath()
	if err != nil {
		return configOutput{}, err
	}
	storePath, err := cfg.ResolveStorePath()
	if err != nil {
		return configOutput{}, err
	}
	keybindings := app.DefaultKeybindings()
	if !defaults {
		keybindings, err = app.LoadKeybindings(keybindingsPath)
		if err != nil {
			return configOutput{}, err
		}
	}
	return configOutput{
		ConfigPath: path,
		Virtualization: effectiveVirtualizationConfig{
			EstimateHeight: cfg.EstimateHeight(),
			Buffer:         cfg.Buffer(),
		},
		UI: effectiveUIConfig{
			Theme:           cfg.Theme(),
			Timestamps:      cfg.UI.Timestamps,
			Follow:          cfg.Follow(),
			KeybindingsPath: keybindingsPath,
		},
		Logging: effectiveLoggingConfig{
			Level: cfg.LogLevel(),
			File:  logPath,
		},
		Store: effectiveStoreConfig{
			Backend: cfg.StoreBackend(),
			Path:    storePath,
		},
		Keybindings: keybindings.Bindings(),
	}, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
