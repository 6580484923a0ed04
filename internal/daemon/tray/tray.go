package tray

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/getlantern/systray"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
	"github.com/mechtifs/lrcd-indicator/internal/daemon/tray/label"
)

//go:embed icon.png
var iconData []byte

var (
	state   State
	onStart func()
	onExit  func()

	sourceItem     *systray.MenuItem
	nowPlayingItem *systray.MenuItem
	quitItem       *systray.MenuItem

	area = label.NewArea(systrayUI{})
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called once the tray is ready (activate the indicator here).
// onExitFn is called when the tray exits (deactivate here).
func Run(s State, opts Options, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	area.SetTooltip(opts.Tooltip)
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// StatusArea returns the tray as a mount point for the indicator widget.
func StatusArea() indicator.StatusArea {
	return area
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTitle("")
	systray.SetTooltip(label.IdleTooltip)

	header := systray.AddMenuItem("lrcd indicator", "")
	header.Disable()

	sourceItem = systray.AddMenuItem("Starting...", "")
	sourceItem.Disable()

	nowPlayingItem = systray.AddMenuItem("", "")
	nowPlayingItem.Disable()
	nowPlayingItem.Hide()

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Stop the lyric indicator")

	if onStart != nil {
		onStart()
	}

	if state != nil {
		sourceItem.SetTitle(fmt.Sprintf("Listening on %s", state.Source()))
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for range quitItem.ClickedCh {
		log.Println("[tray] Quit requested")
		if state != nil {
			state.RequestShutdown()
		}
	}
}

// systrayUI forwards widget changes to the systray library.
type systrayUI struct{}

func (systrayUI) SetTitle(title string)     { systray.SetTitle(title) }
func (systrayUI) SetTooltip(tooltip string) { systray.SetTooltip(tooltip) }

func (systrayUI) SetNowPlaying(line string, visible bool) {
	if nowPlayingItem == nil {
		return
	}
	if !visible {
		nowPlayingItem.Hide()
		return
	}
	nowPlayingItem.SetTitle(formatNowPlaying(line))
	nowPlayingItem.Show()
}

func formatNowPlaying(line string) string {
	return fmt.Sprintf("♪ %s", line)
}
