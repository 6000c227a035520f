package notify

import "sync"

// FakePublisher records payloads for test assertions.
type FakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	closed   bool

	// PublishError, if set, is returned by Publish.
	PublishError error
}

func (f *FakePublisher) Publish(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.payloads = append(f.payloads, append([]byte(nil), payload...))
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Payloads returns a copy of everything published so far.
func (f *FakePublisher) Payloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.payloads))
	copy(out, f.payloads)
	return out
}

// Closed reports whether Close was called.
func (f *FakePublisher) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
