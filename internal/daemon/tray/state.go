// Package tray hosts the lyric indicator in the system tray.
package tray

// State gives the tray read access to the running indicator and a way to stop it.
type State interface {
	// Source describes where lyric updates come from, e.g. "session bus".
	Source() string
	RequestShutdown()
}

// Options controls tray presentation.
type Options struct {
	// Tooltip mirrors the current line into the tray tooltip.
	Tooltip bool
}
