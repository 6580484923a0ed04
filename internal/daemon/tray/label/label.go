// Package label implements the indicator widget on top of a single tray title.
package label

import (
	"fmt"
	"sync"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

// IdleTooltip is shown while no line is displayed.
const IdleTooltip = "lrcd: nothing playing"

// UI is the part of the tray a widget draws on.
type UI interface {
	SetTitle(title string)
	SetTooltip(tooltip string)
	SetNowPlaying(line string, visible bool)
}

// Area mounts at most one widget: the tray has a single title.
type Area struct {
	ui UI

	mu      sync.Mutex
	tooltip bool
	current *Widget
}

// NewArea creates an area drawing on ui.
func NewArea(ui UI) *Area {
	return &Area{ui: ui}
}

// SetTooltip controls whether the shown line is mirrored into the tooltip.
func (a *Area) SetTooltip(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tooltip = enabled
}

// AddWidget claims the tray title. Placement is advisory; the tray has one slot.
func (a *Area) AddWidget(p indicator.Placement) (indicator.Widget, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil && !a.current.destroyed {
		return nil, fmt.Errorf("tray title already owned by %q", a.current.name)
	}
	a.current = &Widget{area: a, name: p.Name}
	return a.current, nil
}

// Widget renders the label as the tray title.
type Widget struct {
	area      *Area
	name      string
	text      string
	visible   bool
	destroyed bool
}

func (w *Widget) SetText(text string) {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed {
		return
	}
	w.text = text
	if w.visible {
		w.render()
	}
}

func (w *Widget) Show() {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed {
		return
	}
	w.visible = true
	w.render()
}

func (w *Widget) Hide() {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed {
		return
	}
	w.visible = false
	w.blank()
}

// Destroy blanks the title and releases it for the next widget.
func (w *Widget) Destroy() {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed {
		return
	}
	w.visible = false
	w.destroyed = true
	w.blank()
}

func (w *Widget) render() {
	ui := w.area.ui
	ui.SetTitle(w.text)
	if w.area.tooltip {
		ui.SetTooltip(w.text)
	}
	ui.SetNowPlaying(w.text, true)
}

func (w *Widget) blank() {
	ui := w.area.ui
	ui.SetTitle("")
	ui.SetTooltip(IdleTooltip)
	ui.SetNowPlaying("", false)
}
