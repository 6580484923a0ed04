// Package bus subscribes to lrcd's Updated signal on the D-Bus session bus.
package bus

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

// Match rule for lrcd's line updates. The sender is deliberately unfiltered.
const (
	Interface  = "com.github.mechtifs.lrcd"
	Member     = "Updated"
	ObjectPath = dbus.ObjectPath("/com/github/mechtifs/lrcd")

	// SignalName is the fully qualified name godbus reports in Signal.Name.
	SignalName = Interface + "." + Member
)

const signalBuffer = 16

// ErrUnknownSubscription is returned when unsubscribing a handle this bus did not issue
// or has already released.
var ErrUnknownSubscription = errors.New("unknown subscription")

// Bus is an indicator.Bus backed by a D-Bus connection.
type Bus struct {
	conn *dbus.Conn
	mu   sync.Mutex
	subs map[*subscription]struct{}
}

// ConnectSession opens a private session bus connection whose signals are
// handed to subscribers in arrival order.
func ConnectSession() (*Bus, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithSignalHandler(dbus.NewSequentialSignalHandler()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return New(conn), nil
}

// New wraps an existing connection. Close closes conn.
func New(conn *dbus.Conn) *Bus {
	return &Bus{
		conn: conn,
		subs: make(map[*subscription]struct{}),
	}
}

func matchOptions() []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(ObjectPath),
		dbus.WithMatchInterface(Interface),
		dbus.WithMatchMember(Member),
	}
}

// Subscribe registers the lrcd match rule and starts delivering updates to h.
func (b *Bus) Subscribe(h indicator.Handler) (indicator.Subscription, error) {
	if err := b.conn.AddMatchSignal(matchOptions()...); err != nil {
		return nil, fmt.Errorf("failed to add match rule: %w", err)
	}

	sub := newSubscription()
	b.conn.Signal(sub.signals)

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go sub.run(h)

	log.Printf("[bus] Subscribed to %s on %s", SignalName, ObjectPath)
	return sub, nil
}

// Unsubscribe removes the match rule and waits for delivery to stop.
func (b *Bus) Unsubscribe(s indicator.Subscription) error {
	sub, ok := s.(*subscription)
	if !ok {
		return ErrUnknownSubscription
	}

	b.mu.Lock()
	if _, ok := b.subs[sub]; !ok {
		b.mu.Unlock()
		return ErrUnknownSubscription
	}
	delete(b.subs, sub)
	b.mu.Unlock()

	b.conn.RemoveSignal(sub.signals)
	sub.halt()

	if err := b.conn.RemoveMatchSignal(matchOptions()...); err != nil {
		return fmt.Errorf("failed to remove match rule: %w", err)
	}
	log.Printf("[bus] Unsubscribed from %s", SignalName)
	return nil
}

// Close releases any remaining subscriptions and closes the connection.
func (b *Bus) Close() error {
	b.mu.Lock()
	subs := make([]*subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		if err := b.Unsubscribe(sub); err != nil {
			log.Printf("[bus] Failed to unsubscribe on close: %v", err)
		}
	}
	return b.conn.Close()
}
