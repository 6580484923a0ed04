package filesource

import (
	"bufio"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mechtifs/lrcd-indicator/internal/indicator"
)

type pipeFollower struct {
	f        *os.File
	done     chan struct{}
	finished chan struct{}
}

// startPipe opens the FIFO read-write, as lrcd does, so the open does not
// block waiting for a writer and the reader never sees EOF between writers.
func startPipe(path string, h indicator.Handler) (*pipeFollower, error) {
	f, err := os.OpenFile(path, os.O_RDWR, os.ModeNamedPipe)
	if err != nil {
		return nil, err
	}

	p := &pipeFollower{
		f:        f,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go p.run(h)
	return p, nil
}

// run reads whole lines of any length until the pipe is closed.
func (p *pipeFollower) run(h indicator.Handler) {
	defer close(p.finished)

	r := bufio.NewReader(p.f)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, os.ErrClosed) && !errors.Is(err, io.EOF) {
				log.Printf("[filesource] Pipe read error: %v", err)
			}
			return
		}
		select {
		case <-p.done:
			return
		default:
		}
		h(indicator.Payload{strings.TrimSuffix(line[:len(line)-1], "\r")})
	}
}

func (p *pipeFollower) stop() {
	close(p.done)
	// Closing unblocks the pending read.
	_ = p.f.Close()
	<-p.finished
}
