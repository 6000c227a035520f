// Package actuator owns the LED fade task: it accepts on/off commands from
// any number of request goroutines without blocking them and runs the
// animation on a single background goroutine started by the first "on".
package actuator

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"mcu_control/internal/events"
	"mcu_control/internal/fade"
	"mcu_control/internal/logger"
	"mcu_control/internal/models"
)

// ErrChannelClosed is returned by Submit once the fade task has exited for
// good (driver fault or shutdown). The task is never respawned.
var ErrChannelClosed = errors.New("actuator: command channel closed")

// Ack confirms a command was accepted, not that it took effect.
type Ack struct {
	Command models.ActuatorCommand
	Queued  bool // false when "off" arrived before any task existed
}

// Controller is safe for concurrent use.
type Controller struct {
	anim *fade.Animator
	box  *mailbox
	bus  *events.Bus
	log  *logger.Logger
	now  func() time.Time

	mu      sync.Mutex // serializes the spawn decision
	stopped bool       // Close ran before any spawn
	done    chan struct{}

	spawned atomic.Bool
	faulted atomic.Bool
	fault   atomic.Pointer[string]
	state   atomic.Uint32 // models.ActuatorState
	duty    atomic.Uint64 // math.Float64bits of the last duty written
	updated atomic.Int64  // unix nanos of the last state change
}

// New creates a stopped controller. No goroutine runs until the first TurnOn.
// bus and log may be nil.
func New(anim *fade.Animator, bus *events.Bus, log *logger.Logger) *Controller {
	return &Controller{
		anim: anim,
		box:  newMailbox(),
		bus:  bus,
		log:  log,
		now:  time.Now,
		done: make(chan struct{}),
	}
}

// Submit queues cmd for the fade task and returns at once.
func (c *Controller) Submit(cmd models.ActuatorCommand) (Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.box.isClosed() {
		return Ack{}, ErrChannelClosed
	}
	if !c.spawned.Load() {
		if cmd != models.CmdTurnOn {
			// nothing is running, so the LED is already off
			return Ack{Command: cmd}, nil
		}
		c.spawned.Store(true)
		go c.run()
	}
	if !c.box.push(fromModel(cmd)) {
		return Ack{}, ErrChannelClosed
	}
	c.bus.Publish(events.CommandAccepted{Command: cmd, At: c.now()})
	return Ack{Command: cmd, Queued: true}, nil
}

// State returns the last published state without blocking.
func (c *Controller) State() models.ActuatorState {
	return models.ActuatorState(c.state.Load())
}

// Duty returns the last duty written to the PWM.
func (c *Controller) Duty() float64 {
	return math.Float64frombits(c.duty.Load())
}

// Status returns a snapshot; it may lag the task by one step.
func (c *Controller) Status() models.ActuatorStatus {
	st := c.State()
	s := models.ActuatorStatus{
		State:     st,
		Direction: st.Direction(),
		Duty:      c.Duty(),
		Spawned:   c.spawned.Load(),
		Faulted:   c.faulted.Load(),
	}
	if msg := c.fault.Load(); msg != nil {
		s.Fault = *msg
	}
	if ns := c.updated.Load(); ns != 0 {
		s.UpdatedAt = time.Unix(0, ns).UTC()
	}
	return s
}

// Done is closed when the fade task has exited (or Close ran before it existed).
func (c *Controller) Done() <-chan struct{} { return c.done }

// Close asks the task to switch the LED off at its next safe point and exit,
// then waits for it or for ctx.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if !c.spawned.Load() {
		if !c.stopped {
			c.stopped = true
			c.box.close()
			close(c.done)
		}
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.box.push(cmdShutdown) // no-op if the task already exited
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// verdict is what the task decides at a safe point between steps.
type verdict int

const (
	keepGoing verdict = iota
	stopFade
	restartFade
	exitTask
)

func (c *Controller) run() {
	defer close(c.done)
	if c.log != nil {
		c.log.Infow("fade_task_started")
	}
	for {
		c.box.wait()
		on, _, shutdown := fold(false, c.box.drain())
		if shutdown {
			c.exit()
			return
		}
		if !on {
			continue
		}
		if exit := c.animate(); exit {
			return
		}
	}
}

// animate loops full cycles until an off, a shutdown or a driver fault.
// It reports whether the task must exit.
func (c *Controller) animate() bool {
	for {
		v, err := c.cycle()
		if err != nil {
			c.fail(err)
			return true
		}
		switch v {
		case keepGoing:
			continue
		case restartFade:
			if err := c.off(); err != nil {
				c.fail(err)
				return true
			}
			continue
		case stopFade:
			if err := c.off(); err != nil {
				c.fail(err)
				return true
			}
			return false
		default:
			if err := c.anim.Off(); err != nil && c.log != nil {
				c.log.Warnw("fade_task_shutdown_write_failed", "err", err)
			}
			c.exit()
			return true
		}
	}
}

// cycle runs ascend, descend, pause. It returns keepGoing if the whole cycle
// ran, or the verdict that interrupted it.
func (c *Controller) cycle() (verdict, error) {
	v := keepGoing
	proceed := func() bool {
		v = c.poll()
		return v == keepGoing
	}
	for _, st := range [...]models.ActuatorState{models.StateFadingUp, models.StateFadingDown} {
		c.setState(st)
		if err := c.anim.Sweep(st.Direction(), c.setDuty, proceed); err != nil {
			if errors.Is(err, fade.ErrStopped) {
				return v, nil
			}
			return v, err
		}
	}
	if err := c.anim.Pause(proceed); err != nil {
		return v, nil
	}
	return keepGoing, nil
}

// poll drains the mailbox at a safe point while the animation runs.
func (c *Controller) poll() verdict {
	cmds := c.box.drain()
	if len(cmds) == 0 {
		return keepGoing
	}
	next, interrupted, shutdown := fold(true, cmds)
	switch {
	case shutdown:
		return exitTask
	case interrupted && next:
		return restartFade
	case interrupted:
		return stopFade
	default:
		return keepGoing // repeated "on" while running
	}
}

func (c *Controller) off() error {
	if err := c.anim.Off(); err != nil {
		return err
	}
	c.setDuty(0)
	c.setState(models.StateStopped)
	return nil
}

func (c *Controller) setDuty(d float64) {
	c.duty.Store(math.Float64bits(d))
}

func (c *Controller) setState(st models.ActuatorState) {
	if models.ActuatorState(c.state.Swap(uint32(st))) == st {
		return
	}
	now := c.now()
	c.updated.Store(now.UnixNano())
	if c.log != nil {
		c.log.Debugw("fade_state_changed", "state", st.String())
	}
	c.bus.Publish(events.StateChanged{State: st, Duty: c.Duty(), At: now})
}

// fail ends the task after a driver error; the peripheral state is unknown
// so nothing is retried.
func (c *Controller) fail(err error) {
	msg := err.Error()
	c.fault.Store(&msg)
	c.faulted.Store(true)
	c.box.close()
	c.setState(models.StateStopped)
	if c.log != nil {
		c.log.Errorw("fade_task_fault", "err", err)
	}
	c.bus.Publish(events.TaskFaulted{Err: msg, At: c.now()})
}

func (c *Controller) exit() {
	c.box.close()
	c.setDuty(0)
	c.setState(models.StateStopped)
	if c.log != nil {
		c.log.Infow("fade_task_stopped")
	}
}
