// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

// DirName is the name of the indicator's directory under the user config dir.
// lrcd itself keeps its config.yaml in the sibling "lrcd" directory.
const DirName = "lrcd-indicator"

// File names
const (
	SettingsFileName = "settings.yaml"
	InstanceFileName = "instance.yaml"
)

// Dir returns the indicator's config directory ($XDG_CONFIG_HOME/lrcd-indicator/).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

// SettingsFile returns the path to the settings.yaml file.
func SettingsFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// InstanceFile returns the path to the instance.yaml file.
func InstanceFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, InstanceFileName), nil
}

// EnsureDir creates the config directory if it doesn't exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
