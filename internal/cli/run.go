package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mechtifs/lrcd-indicator/internal/config"
	"github.com/mechtifs/lrcd-indicator/internal/daemon/session"
	"github.com/mechtifs/lrcd-indicator/internal/daemon/tray"
	"github.com/mechtifs/lrcd-indicator/internal/models"
)

func runIndicator(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	opts := session.OptionsFromSettings(settings)
	if flagFile != "" {
		opts.Source = models.SourceFile
		opts.FilePath = flagFile
	}
	if flagSource != "" {
		opts.Source = flagSource
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if flagForeground {
		log.Println("Running in foreground mode (no system tray)")
		return session.RunForeground(opts)
	}
	log.Println("Running with system tray")
	return runWithTray(opts)
}

// runWithTray runs the indicator in the system tray on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(opts session.Options) error {
	opts.Tray = true
	if err := session.Register(opts); err != nil {
		return err
	}
	defer session.Unregister()

	var (
		s        *session.Session
		startErr error
	)

	onStart := func() {
		s, startErr = session.Start(opts, tray.StatusArea())
		if startErr != nil {
			log.Printf("Failed to start indicator: %v", startErr)
			tray.Quit()
			return
		}

		// Quit the tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		if s != nil {
			s.Stop()
		}
		fmt.Println("Indicator stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(trayState{opts: opts}, tray.Options{Tooltip: opts.Tooltip}, onStart, onExit)
	return startErr
}

// trayState exposes the session to the tray menu.
type trayState struct {
	opts session.Options
}

func (t trayState) Source() string {
	return t.opts.Describe()
}

func (t trayState) RequestShutdown() {
	tray.Quit()
}
