package config

import (
	"fmt"

	"github.com/mechtifs/lrcd-indicator/internal/models"
)

// LoadSettings loads settings.yaml, returning defaults if it doesn't exist.
// Loaded settings are validated.
func LoadSettings() (*models.Settings, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if settings.Source == "" {
		settings.Source = models.SourceDBus
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}
