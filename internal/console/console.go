// Package console renders the indicator as a single status line on a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

var labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})

// flatten keeps a multi-line label on the one status line.
var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Area is an indicator.StatusArea that draws onto one terminal line.
// When the output is not a terminal, each shown line is printed plainly.
type Area struct {
	out         io.Writer
	interactive bool
	width       func() int

	mu     sync.Mutex
	widget *Widget
}

// New creates an area writing to out. Terminal handling is enabled when
// out is a terminal.
func New(out io.Writer) *Area {
	a := &Area{out: out, width: func() int { return 0 }}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		a.interactive = true
		a.width = func() int {
			w, _, err := term.GetSize(fd)
			if err != nil {
				return 0
			}
			return w
		}
	}
	return a
}

// AddWidget mounts the status line. Only one widget is mounted at a time.
func (a *Area) AddWidget(p indicator.Placement) (indicator.Widget, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.widget != nil && !a.widget.destroyed {
		return nil, fmt.Errorf("console already hosts %q", a.widget.name)
	}
	a.widget = &Widget{area: a, name: p.Name}
	return a.widget, nil
}

// Widget is the console status line.
type Widget struct {
	area      *Area
	name      string
	text      string
	visible   bool
	destroyed bool
}

// SetText replaces the label, redrawing it if visible.
func (w *Widget) SetText(text string) {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed {
		return
	}
	w.text = text
	if w.visible {
		w.draw()
	}
}

// Show draws the label.
func (w *Widget) Show() {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed || w.visible {
		return
	}
	w.visible = true
	w.draw()
}

// Hide erases the label, keeping its text.
func (w *Widget) Hide() {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed || !w.visible {
		return
	}
	w.visible = false
	w.clear()
}

// Destroy erases the line and detaches the widget.
func (w *Widget) Destroy() {
	w.area.mu.Lock()
	defer w.area.mu.Unlock()

	if w.destroyed {
		return
	}
	if w.visible {
		w.clear()
	}
	w.visible = false
	w.destroyed = true
}

func (w *Widget) draw() {
	a := w.area
	text := flatten.Replace(w.text)
	if !a.interactive {
		fmt.Fprintln(a.out, text)
		return
	}
	if width := a.width(); width > 0 {
		text = ansi.Truncate(text, width-1, "…")
	}
	fmt.Fprint(a.out, "\r"+ansi.EraseEntireLine+labelStyle.Render(text))
}

func (w *Widget) clear() {
	a := w.area
	if !a.interactive {
		fmt.Fprintln(a.out)
		return
	}
	fmt.Fprint(a.out, "\r"+ansi.EraseEntireLine)
}
