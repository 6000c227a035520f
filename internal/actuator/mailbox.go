package actuator

import (
	"sync"

	"mcu_control/internal/models"
)

// command is what travels through the mailbox: the public commands plus the
// internal shutdown request.
type command uint8

const (
	cmdOn command = iota + 1
	cmdOff
	cmdShutdown
)

func fromModel(c models.ActuatorCommand) command {
	if c == models.CmdTurnOn {
		return cmdOn
	}
	return cmdOff
}

// mailbox is the command channel: unbounded FIFO, any number of concurrent
// senders, one receiver. push never blocks.
type mailbox struct {
	mu     sync.Mutex
	queue  []command
	closed bool
	ready  chan struct{} // holds one token while the queue may be non-empty
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

// push appends c and wakes the receiver. It reports false once closed.
func (m *mailbox) push(c command) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, c)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return true
}

// drain takes every queued command in send order without blocking.
func (m *mailbox) drain() []command {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil
	}
	out := m.queue
	m.queue = nil
	return out
}

// wait blocks until something may have been pushed.
func (m *mailbox) wait() { <-m.ready }

// close rejects further pushes and drops anything still queued.
func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.queue = nil
	m.mu.Unlock()
}

func (m *mailbox) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// fold applies a batch of commands in order to the current intent.
// interrupted is set when a running animation has to stop for this batch.
func fold(enabled bool, cmds []command) (next, interrupted, shutdown bool) {
	next = enabled
	for _, c := range cmds {
		switch c {
		case cmdOn:
			next = true
		case cmdOff:
			if next {
				interrupted = true
			}
			next = false
		case cmdShutdown:
			return false, true, true
		}
	}
	return next, interrupted, false
}
