//go:build !windows

package main

import (
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// TerminalHost reads raw stdin and hands decoded key actions to a handler.
// Only instantiated in main.go for interactive use, never in tests.
type TerminalHost struct {
	handle       func(KeyAction)
	keys         keyDecoder
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
	log          *logrus.Entry
}

func NewTerminalHost(handle func(KeyAction)) *TerminalHost {
	return &TerminalHost{
		handle: handle,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		log:    logrus.WithField("component", "terminal"),
	}
}

// Start puts stdin into raw non-blocking mode and begins reading in a
// goroutine. Returns false when stdin is not a usable terminal.
// Call Stop() to restore stdin.
func (h *TerminalHost) Start() bool {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		h.log.WithError(err).Warn("Failed to set raw mode")
		close(h.done)
		return false
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		h.log.WithError(err).Warn("Failed to set nonblocking stdin")
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return false
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				if a := h.keys.Feed(buf[0]); a != KeyNone {
					h.handle(a)
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return true
}

// Stop terminates the reader and restores stdin to blocking cooked mode.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
