package driver

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// FakePWM is a test double recording every duty written.
type FakePWM struct {
	mu     sync.Mutex
	writes []float64

	// FailOn, if > 0, makes the FailOn-th write (1-based) and every later
	// one fail with FailErr (or a generic driver error).
	FailOn  int
	FailErr error

	// OnWrite, if set, is called after each successful write with its value.
	OnWrite func(fraction float64)
}

// NewFakePWM creates an empty FakePWM.
func NewFakePWM() *FakePWM { return &FakePWM{} }

// SetDuty records the duty or fails as scripted.
func (f *FakePWM) SetDuty(fraction float64) error {
	if err := checkDuty(fraction); err != nil {
		return err
	}
	f.mu.Lock()
	n := len(f.writes) + 1
	if f.FailOn > 0 && n >= f.FailOn {
		f.mu.Unlock()
		if f.FailErr != nil {
			return Wrap("set duty", f.FailErr)
		}
		return Wrap("set duty", errors.New("scripted failure"))
	}
	f.writes = append(f.writes, fraction)
	hook := f.OnWrite
	f.mu.Unlock()

	if hook != nil {
		hook(fraction)
	}
	return nil
}

// Writes returns a copy of all recorded duties.
func (f *FakePWM) Writes() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, len(f.writes))
	copy(out, f.writes)
	return out
}

// Count returns the number of successful writes.
func (f *FakePWM) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

// Last returns the most recent duty, or -1 if nothing was written.
func (f *FakePWM) Last() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return -1
	}
	return f.writes[len(f.writes)-1]
}

// FakeThermometer returns scripted readings and tracks overlapping reads.
type FakeThermometer struct {
	mu     sync.Mutex
	values []float64
	index  int

	// ReadError, if set, is returned (wrapped as a driver error) by every read.
	ReadError error

	// Hold keeps each read "on the bus" for this long.
	Hold time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	reads       atomic.Int32
}

// NewFakeThermometer creates a FakeThermometer returning values in order,
// repeating the last one once exhausted.
func NewFakeThermometer(values ...float64) *FakeThermometer {
	return &FakeThermometer{values: values}
}

// ReadTemperature returns the next scripted value.
func (f *FakeThermometer) ReadTemperature() (float64, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	f.reads.Add(1)

	if f.Hold > 0 {
		time.Sleep(f.Hold)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return 0, Wrap("read temperature", f.ReadError)
	}
	if len(f.values) == 0 {
		return 0, Wrap("read temperature", errors.New("no samples configured"))
	}
	v := f.values[f.index]
	if f.index < len(f.values)-1 {
		f.index++
	}
	return v, nil
}

// MaxInFlight is the highest number of reads ever observed overlapping.
func (f *FakeThermometer) MaxInFlight() int { return int(f.maxInFlight.Load()) }

// Reads is the total number of reads attempted.
func (f *FakeThermometer) Reads() int { return int(f.reads.Load()) }

// StepClock is a Clock whose Delay blocks until the test releases it,
// letting tests interleave commands with animation steps deterministically.
type StepClock struct {
	entered chan time.Duration
	release chan struct{}
}

// NewStepClock creates a StepClock.
func NewStepClock() *StepClock {
	return &StepClock{
		entered: make(chan time.Duration),
		release: make(chan struct{}),
	}
}

// Delay announces the caller is parked and waits for Release.
func (c *StepClock) Delay(d time.Duration) {
	c.entered <- d
	<-c.release
}

// Await blocks until a goroutine is parked in Delay and returns the duration
// it asked for. The goroutine stays parked until Release.
func (c *StepClock) Await(timeout time.Duration) (time.Duration, bool) {
	select {
	case d := <-c.entered:
		return d, true
	case <-time.After(timeout):
		return 0, false
	}
}

// Release unparks the goroutine previously returned by Await.
func (c *StepClock) Release() { c.release <- struct{}{} }

// Step waits for the next Delay and releases it immediately.
func (c *StepClock) Step(timeout time.Duration) bool {
	if _, ok := c.Await(timeout); !ok {
		return false
	}
	c.Release()
	return true
}
