// Package config loads leasetx settings from flags, the environment and the
// config file.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is used for the config and data directory names.
const AppName = "leasetx"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// Dir returns the directory holding config.yaml.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultDatabasePath is the unexpanded default location of the sqlite file.
func DefaultDatabasePath() string {
	return "~/.local/share/" + AppName + "/" + AppName + ".db"
}
