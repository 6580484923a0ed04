// Package indicator keeps a status-area label in sync with the lyric line
// broadcast by lrcd.
package indicator

// Side is the edge of the status area a widget is mounted on.
type Side string

// Status area sides.
const (
	SideLeft   Side = "left"
	SideCenter Side = "center"
	SideRight  Side = "right"
)

// Placement describes where a widget is mounted in the status area.
type Placement struct {
	Name     string
	Position int // lower sorts later; -1 is the lowest priority
	Side     Side
}

// Widget is a mounted status-area element holding a single text label.
type Widget interface {
	SetText(text string)
	Show()
	Hide()
	// Destroy unmounts the widget and releases its resources.
	Destroy()
}

// StatusArea creates widgets and mounts them into the host's status display.
type StatusArea interface {
	AddWidget(p Placement) (Widget, error)
}

// Payload is the positional body of a received signal.
type Payload []interface{}

// Handler receives one payload per delivered signal.
type Handler func(Payload)

// Subscription is an opaque token returned by Bus.Subscribe.
type Subscription interface{}

// Bus delivers lrcd updates to subscribers.
//
// Implementations call a handler from a single goroutine per subscription,
// in delivery order, and do not return from Unsubscribe until that
// goroutine has stopped calling the handler.
type Bus interface {
	Subscribe(h Handler) (Subscription, error)
	Unsubscribe(s Subscription) error
}
