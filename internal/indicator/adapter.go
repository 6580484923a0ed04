package indicator

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// DefaultPlacement mounts the indicator on the left side at the lowest priority.
var DefaultPlacement = Placement{
	Name:     "lrcd-indicator",
	Position: -1,
	Side:     SideLeft,
}

// ErrAlreadyActive is returned by Activate when the adapter is already running.
var ErrAlreadyActive = errors.New("indicator already active")

// Adapter owns the indicator widget and its bus subscription.
// The widget and subscription are both non-nil exactly while the adapter is active.
type Adapter struct {
	placement Placement

	mu     sync.Mutex
	widget Widget
	bus    Bus
	sub    Subscription
}

// New creates an inactive adapter that mounts its widget at p.
func New(p Placement) *Adapter {
	return &Adapter{placement: p}
}

// Active reports whether the adapter currently holds a widget and subscription.
func (a *Adapter) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.widget != nil
}

// Activate mounts a hidden widget into area and subscribes to bus.
// If the subscription fails the widget is destroyed and the adapter stays inactive.
func (a *Adapter) Activate(area StatusArea, bus Bus) error {
	a.mu.Lock()
	if a.widget != nil {
		a.mu.Unlock()
		return ErrAlreadyActive
	}

	widget, err := area.AddWidget(a.placement)
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("failed to create indicator widget: %w", err)
	}
	widget.Hide()
	a.widget = widget
	a.bus = bus
	a.mu.Unlock()

	// Subscribe outside the lock: a bus may deliver before Subscribe returns.
	sub, err := bus.Subscribe(a.OnSignalReceived)
	if err != nil {
		a.mu.Lock()
		a.widget = nil
		a.bus = nil
		a.mu.Unlock()
		widget.Destroy()
		return fmt.Errorf("failed to subscribe to lyric updates: %w", err)
	}

	a.mu.Lock()
	a.sub = sub
	a.mu.Unlock()

	log.Printf("[indicator] Activated (%s, side=%s, position=%d)", a.placement.Name, a.placement.Side, a.placement.Position)
	return nil
}

// OnSignalReceived applies one lrcd update to the widget.
func (a *Adapter) OnSignalReceived(p Payload) {
	line, err := DecodeLine(p)
	if err != nil {
		log.Printf("[indicator] Ignoring update: %v", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.widget == nil {
		return
	}
	if IsBlank(line) {
		a.widget.Hide()
		return
	}
	a.widget.SetText(line)
	a.widget.Show()
}

// Deactivate unsubscribes and destroys the widget. It is a no-op when inactive.
func (a *Adapter) Deactivate() error {
	a.mu.Lock()
	widget, bus, sub := a.widget, a.bus, a.sub
	a.widget, a.bus, a.sub = nil, nil, nil
	a.mu.Unlock()

	if widget == nil && sub == nil {
		return nil
	}

	// Unsubscribe waits for the dispatch goroutine, which may be blocked on
	// a.mu inside OnSignalReceived; the lock must not be held here.
	var err error
	if bus != nil && sub != nil {
		if uerr := bus.Unsubscribe(sub); uerr != nil {
			log.Printf("[indicator] Failed to unsubscribe: %v", uerr)
			err = fmt.Errorf("failed to unsubscribe from lyric updates: %w", uerr)
		}
	}
	if widget != nil {
		widget.Destroy()
	}

	log.Printf("[indicator] Deactivated")
	return err
}
