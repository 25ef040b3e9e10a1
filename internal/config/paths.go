package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".vibe"

// DataDir returns the base data directory for vibe.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	return dataPath("config.toml")
}

// KeybindingsPath returns the default keybindings override file.
func KeybindingsPath() (string, error) {
	return dataPath("keybindings.json")
}

// LogPath returns the default UI log file.
func LogPath() (string, error) {
	return dataPath("ui.log")
}

// StatePath returns the default UI state database.
func StatePath() (string, error) {
	return dataPath("state.db")
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
