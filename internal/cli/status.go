package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mechtifs/lrcd-indicator/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the indicator is running",
	RunE:  runStatus,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running indicator",
	RunE:  runStop,
}

func runStatus(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check indicator status: %w", err)
	}

	if !running || info == nil {
		fmt.Println(styleHint.Render("Indicator is not running."))
		return nil
	}

	mode := "terminal"
	if info.Tray {
		mode = "system tray"
	}
	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println(styleSuccess.Render("Indicator is running."))
	fmt.Printf("  %s %s\n", styleLabel.Render("PID:   "), styleValue.Render(fmt.Sprint(info.PID)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Source:"), styleValue.Render(info.Source))
	fmt.Printf("  %s %s\n", styleLabel.Render("Mode:  "), styleValue.Render(mode))
	fmt.Printf("  %s %s\n", styleLabel.Render("Uptime:"), styleValue.Render(uptime.String()))
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsRunning()
	if err != nil {
		return fmt.Errorf("failed to check indicator status: %w", err)
	}

	if !running || info == nil {
		fmt.Println(styleHint.Render("Indicator is not running."))
		return nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find indicator process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsRunning()
		if err == nil && !stillRunning {
			fmt.Println(styleSuccess.Render("Indicator stopped."))
			return nil
		}
	}

	return fmt.Errorf("indicator did not stop within timeout")
}
