// Package cli implements the lrcd-indicator commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagForeground bool
	flagSource     string
	flagFile       string
)

var rootCmd = &cobra.Command{
	Use:   "lrcd-indicator",
	Short: "Show the current lrcd lyric line in the status area",
	Long: `lrcd-indicator listens for lyric updates from lrcd and shows the
current line as a status indicator. Blank lines hide the indicator.

By default updates are read from lrcd's D-Bus publisher on the session bus
and shown in the system tray.`,
	SilenceUsage: true,
	RunE:         runIndicator,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Show lines on the terminal instead of the system tray")
	rootCmd.Flags().StringVar(&flagSource, "source", "", `Lyric source: "dbus" or "file" (overrides settings)`)
	rootCmd.Flags().StringVar(&flagFile, "file", "", "Absolute path of lrcd's file publisher output (implies --source file)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)
}
