package filesource

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

// fileFollower tails a regular file. The parent directory is watched rather
// than the file itself so that removal and re-creation are noticed.
type fileFollower struct {
	path      string
	fsWatcher *fsnotify.Watcher
	handler   indicator.Handler
	seen      []byte
	done      chan struct{}
	finished  chan struct{}
}

func startFile(path string, h indicator.Handler) (*fileFollower, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	f := &fileFollower{
		path:      path,
		fsWatcher: fsWatcher,
		handler:   h,
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
	}
	go f.processEvents()
	return f, nil
}

// processEvents owns all follower state; every handler call happens here.
func (f *fileFollower) processEvents() {
	defer close(f.finished)

	f.catchUp()

	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			f.handleEvent(event)
		case err, ok := <-f.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[filesource] Watcher error: %v", err)
		}
	}
}

func (f *fileFollower) handleEvent(event fsnotify.Event) {
	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		f.seen = nil
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		f.readNew()
	}
}

// catchUp delivers the last complete line already in the file, which is
// lrcd's current state.
func (f *fileFollower) catchUp() {
	data, ok := f.read()
	if !ok {
		return
	}
	f.seen = data
	if lines := changedLines(nil, data); len(lines) > 0 {
		f.deliver(lines[len(lines)-1])
	}
}

// readNew delivers every complete line written since the last read.
func (f *fileFollower) readNew() {
	data, ok := f.read()
	if !ok {
		return
	}
	lines := changedLines(f.seen, data)
	f.seen = data
	for _, line := range lines {
		f.deliver(line)
	}
}

func (f *fileFollower) read() ([]byte, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[filesource] Failed to read %s: %v", f.path, err)
		}
		return nil, false
	}
	return data, true
}

func (f *fileFollower) deliver(line string) {
	select {
	case <-f.done:
		return
	default:
	}
	f.handler(indicator.Payload{line})
}

func (f *fileFollower) stop() {
	close(f.done)
	<-f.finished
	_ = f.fsWatcher.Close()
}

// changedLines returns the complete lines of data that differ from seen.
// lrcd reopens an existing file without truncating it and writes from the
// start, so a new line can land over old bytes without the file growing.
// Appends and in-place rewrites both reduce to the span where the two
// contents differ. A line is reported once its newline is present,
// and a trailing CR is dropped.
func changedLines(seen, data []byte) []string {
	n := min(len(seen), len(data))
	first := 0
	for first < n && seen[first] == data[first] {
		first++
	}
	if first == len(data) {
		return nil
	}

	end := len(data)
	if len(data) <= len(seen) {
		for end > first && seen[end-1] == data[end-1] {
			end--
		}
	}

	var lines []string
	for start := bytes.LastIndexByte(data[:first], '\n') + 1; start < end; {
		i := bytes.IndexByte(data[start:], '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(bytes.TrimSuffix(data[start:start+i], []byte{'\r'})))
		start += i + 1
	}
	return lines
}
