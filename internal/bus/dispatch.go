package bus

import (
	"github.com/godbus/dbus/v5"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

// subscription owns the signal channel registered with the connection and
// the goroutine draining it.
type subscription struct {
	signals  chan *dbus.Signal
	done     chan struct{}
	finished chan struct{}
}

func newSubscription() *subscription {
	return &subscription{
		signals:  make(chan *dbus.Signal, signalBuffer),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// run delivers matching signals to h, one at a time, until halt is called.
// The connection shares one signal stream across all match rules, so
// everything that is not lrcd's update is skipped here.
func (s *subscription) run(h indicator.Handler) {
	defer close(s.finished)
	for {
		select {
		case <-s.done:
			return
		case sig, ok := <-s.signals:
			if !ok {
				return
			}
			if !matches(sig) {
				continue
			}
			// halt may race with a buffered signal; done wins.
			select {
			case <-s.done:
				return
			default:
			}
			h(payload(sig))
		}
	}
}

// halt stops delivery and blocks until run has returned.
func (s *subscription) halt() {
	close(s.done)
	<-s.finished
}

func matches(sig *dbus.Signal) bool {
	return sig != nil && sig.Path == ObjectPath && sig.Name == SignalName
}

// payload converts a signal body, unwrapping a variant in the first field.
func payload(sig *dbus.Signal) indicator.Payload {
	p := make(indicator.Payload, len(sig.Body))
	copy(p, sig.Body)
	if len(p) > 0 {
		if v, ok := p[0].(dbus.Variant); ok {
			p[0] = v.Value()
		}
	}
	return p
}
