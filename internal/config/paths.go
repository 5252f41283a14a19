package config

import (
	"os"
	"path/filepath"
)

// FileName is the name of the configuration file.
const FileName = "termcore.yml"

// UserConfigDir returns the directory holding the configuration file.
func UserConfigDir() string {
	return userConfigDir(os.Getenv, os.UserHomeDir)
}

func userConfigDir(getenv func(string) string, home func() (string, error)) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "termcore")
	}
	dir, _ := home()
	return filepath.Join(dir, ".config", "termcore")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(UserConfigDir(), FileName)
}
