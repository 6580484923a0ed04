package models

import (
	"fmt"
	"path/filepath"
)

// Lyric sources.
const (
	SourceDBus = "dbus"
	SourceFile = "file"
)

// FileSourceConfig points at the output of lrcd's file publisher.
type FileSourceConfig struct {
	Path string `yaml:"path"` // regular file or named pipe
}

// TrayConfig holds tray presentation settings.
type TrayConfig struct {
	Tooltip bool `yaml:"tooltip"`
}

// Settings represents the indicator's settings.
// This corresponds to $XDG_CONFIG_HOME/lrcd-indicator/settings.yaml.
type Settings struct {
	Version int              `yaml:"version"`
	Source  string           `yaml:"source"` // "dbus" | "file"
	File    FileSourceConfig `yaml:"file"`
	Tray    TrayConfig       `yaml:"tray"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Source:  SourceDBus,
		Tray: TrayConfig{
			Tooltip: true,
		},
	}
}

// Validate checks that the selected source is usable.
func (s *Settings) Validate() error {
	switch s.Source {
	case SourceDBus:
		return nil
	case SourceFile:
		if s.File.Path == "" {
			return fmt.Errorf("source %q requires file.path", SourceFile)
		}
		if !filepath.IsAbs(s.File.Path) {
			return fmt.Errorf("file.path must be absolute, got %q", s.File.Path)
		}
		return nil
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", s.Source, SourceDBus, SourceFile)
	}
}
