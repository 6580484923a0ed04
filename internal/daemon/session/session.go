// Package session wires a lyric source and a status area to the indicator
// adapter and manages the running instance record.
package session

import (
	"fmt"
	"log"
	"os"

	"github.com/mechtifs/lrcd-indicator/internal/bus"
	"github.com/mechtifs/lrcd-indicator/internal/config"
	"github.com/mechtifs/lrcd-indicator/internal/filesource"
	"github.com/mechtifs/lrcd-indicator/internal/indicator"
	"github.com/mechtifs/lrcd-indicator/internal/models"
)

// Options selects where updates come from and how they are shown.
type Options struct {
	Source   string // models.SourceDBus or models.SourceFile
	FilePath string
	Tooltip  bool
	Tray     bool
}

// OptionsFromSettings builds options from loaded settings.
func OptionsFromSettings(s *models.Settings) Options {
	return Options{
		Source:   s.Source,
		FilePath: s.File.Path,
		Tooltip:  s.Tray.Tooltip,
		Tray:     true,
	}
}

// Validate checks the source selection.
func (o Options) Validate() error {
	settings := models.Settings{Source: o.Source, File: models.FileSourceConfig{Path: o.FilePath}}
	return settings.Validate()
}

// Describe names the source for logs and the tray menu.
func (o Options) Describe() string {
	if o.Source == models.SourceFile {
		return o.FilePath
	}
	return "session bus"
}

// Session is one activation of the indicator.
type Session struct {
	opts     Options
	adapter  *indicator.Adapter
	source   indicator.Bus
	closeSrc func() error
}

// openSource connects the configured lyric source.
func openSource(opts Options) (indicator.Bus, func() error, error) {
	switch opts.Source {
	case models.SourceDBus:
		b, err := bus.ConnectSession()
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case models.SourceFile:
		return filesource.New(opts.FilePath), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", opts.Source)
	}
}

// Start opens the source and activates the indicator in area.
func Start(opts Options, area indicator.StatusArea) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	source, closeSrc, err := openSource(opts)
	if err != nil {
		return nil, err
	}

	adapter := indicator.New(indicator.DefaultPlacement)
	if err := adapter.Activate(area, source); err != nil {
		if cerr := closeSrc(); cerr != nil {
			log.Printf("Failed to close source: %v", cerr)
		}
		return nil, err
	}

	log.Printf("Indicator started (source: %s)", opts.Describe())
	return &Session{
		opts:     opts,
		adapter:  adapter,
		source:   source,
		closeSrc: closeSrc,
	}, nil
}

// Active reports whether the indicator is still active.
func (s *Session) Active() bool {
	return s.adapter.Active()
}

// Stop deactivates the indicator and closes the source. It is safe to call twice.
func (s *Session) Stop() {
	if err := s.adapter.Deactivate(); err != nil {
		log.Printf("Failed to deactivate indicator: %v", err)
	}
	if s.closeSrc != nil {
		if err := s.closeSrc(); err != nil {
			log.Printf("Failed to close source: %v", err)
		}
		s.closeSrc = nil
	}
}

// Register records this process as the running instance, refusing if
// another live instance exists.
func Register(opts Options) error {
	if err := config.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	running, info, err := config.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check instance status: %w", err)
	}
	if running {
		return fmt.Errorf("indicator already running (PID %d, source %s)", info.PID, info.Source)
	}

	info = models.NewInstanceInfo(os.Getpid(), opts.Source, opts.Tray)
	if err := config.SaveInstanceInfo(info); err != nil {
		return fmt.Errorf("failed to write instance info: %w", err)
	}
	return nil
}

// Unregister removes the instance record.
func Unregister() {
	if err := config.RemoveInstanceInfo(); err != nil {
		log.Printf("Failed to remove instance info: %v", err)
	}
}
