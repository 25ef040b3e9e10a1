package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultEstimateHeight = 6
	defaultBuffer         = 40
	defaultTheme          = "dark"
	defaultLogLevel       = "info"
	defaultStoreBackend   = "bbolt"
)

const (
	StoreBackendBolt = "bbolt"
	StoreBackendFile = "file"
)

type Config struct {
	Virtualization VirtualizationConfig `toml:"virtualization" json:"virtualization"`
	UI             UIConfig             `toml:"ui" json:"ui"`
	Logging        LoggingConfig        `toml:"logging" json:"logging"`
	Store          StoreConfig          `toml:"store" json:"store"`
}

type VirtualizationConfig struct {
	EstimateHeight int `toml:"estimate_height" json:"estimate_height"`
	Buffer         int `toml:"buffer" json:"buffer"`
}

type UIConfig struct {
	Theme           string `toml:"theme" json:"theme"`
	Timestamps      bool   `toml:"timestamps" json:"timestamps"`
	Follow          *bool  `toml:"follow" json:"follow"`
	KeybindingsPath string `toml:"keybindings_path" json:"keybindings_path"`
}

type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

type StoreConfig struct {
	Backend string `toml:"backend" json:"backend"`
	Path    string `toml:"path" json:"path"`
}

func Default() Config {
	follow := true
	return Config{
		Virtualization: VirtualizationConfig{
			EstimateHeight: defaultEstimateHeight,
			Buffer:         defaultBuffer,
		},
		UI: UIConfig{
			Theme:           defaultTheme,
			Follow:          &follow,
			KeybindingsPath: "keybindings.json",
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
			File:  "ui.log",
		},
		Store: StoreConfig{
			Backend: defaultStoreBackend,
			Path:    "state.db",
		},
	}
}

// Load reads ~/.vibe/config.toml. A missing or empty file yields defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) EstimateHeight() int {
	if c.Virtualization.EstimateHeight <= 0 {
		return defaultEstimateHeight
	}
	return c.Virtualization.EstimateHeight
}

func (c Config) Buffer() int {
	if c.Virtualization.Buffer < 0 {
		return defaultBuffer
	}
	return c.Virtualization.Buffer
}

func (c Config) Theme() string {
	switch strings.ToLower(strings.TrimSpace(c.UI.Theme)) {
	case "light":
		return "light"
	default:
		return defaultTheme
	}
}

func (c Config) Follow() bool {
	if c.UI.Follow == nil {
		return true
	}
	return *c.UI.Follow
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) StoreBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Store.Backend)) {
	case StoreBackendFile, "json":
		return StoreBackendFile
	default:
		return StoreBackendBolt
	}
}

func (c Config) ResolveKeybindingsPath() (string, error) {
	return resolveOr(c.UI.KeybindingsPath, KeybindingsPath)
}

func (c Config) ResolveLogPath() (string, error) {
	return resolveOr(c.Logging.File, LogPath)
}

func (c Config) ResolveStorePath() (string, error) {
	return resolveOr(c.Store.Path, StatePath)
}

func resolveOr(raw string, fallback func() (string, error)) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback()
	}
	return resolveConfigPath(raw)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
