package session

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mechtifs/lrcd-indicator/internal/console"
)

// RunForeground shows the indicator on stdout, blocking until SIGINT or SIGTERM.
func RunForeground(opts Options) error {
	opts.Tray = false
	if err := Register(opts); err != nil {
		return err
	}
	defer Unregister()

	s, err := Start(opts, console.New(os.Stdout))
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	s.Stop()
	fmt.Println("Indicator stopped")
	return nil
}
