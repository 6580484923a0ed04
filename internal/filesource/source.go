// Package filesource follows the output of lrcd's file publisher, either a
// regular file or a named pipe, and delivers each line as an update.
package filesource

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

// ErrUnknownSubscription is returned when unsubscribing a handle this source did not issue
// or has already released.
var ErrUnknownSubscription = errors.New("unknown subscription")

// follower delivers lines from one opened path until stopped.
type follower interface {
	// stop ends delivery and blocks until the handler will not be called again.
	stop()
}

// Source is an indicator.Bus reading newline-terminated lines from a path.
type Source struct {
	path string
	mu   sync.Mutex
	subs map[follower]struct{}
}

// New creates a source for path. Nothing is opened until Subscribe.
func New(path string) *Source {
	return &Source{
		path: filepath.Clean(path),
		subs: make(map[follower]struct{}),
	}
}

// Path returns the followed path.
func (s *Source) Path() string {
	return s.path
}

// Subscribe starts following the path. A named pipe is read directly; anything
// else is treated as a regular file and watched for appended lines.
func (s *Source) Subscribe(h indicator.Handler) (indicator.Subscription, error) {
	var (
		f   follower
		err error
	)
	if isNamedPipe(s.path) {
		f, err = startPipe(s.path, h)
	} else {
		f, err = startFile(s.path, h)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to follow %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.subs[f] = struct{}{}
	s.mu.Unlock()

	log.Printf("[filesource] Following %s", s.path)
	return f, nil
}

// Unsubscribe stops following and waits for delivery to end.
func (s *Source) Unsubscribe(sub indicator.Subscription) error {
	f, ok := sub.(follower)
	if !ok {
		return ErrUnknownSubscription
	}

	s.mu.Lock()
	if _, ok := s.subs[f]; !ok {
		s.mu.Unlock()
		return ErrUnknownSubscription
	}
	delete(s.subs, f)
	s.mu.Unlock()

	f.stop()
	log.Printf("[filesource] Stopped following %s", s.path)
	return nil
}

func isNamedPipe(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().Type() == os.ModeNamedPipe
}
