// Package fade ramps the LED duty cycle up and down in discrete steps.
package fade

import (
	"errors"
	"fmt"
	"time"

	"mcu_control/internal/driver"
	"mcu_control/internal/models"
)

// Defaults give a full cycle of roughly 2.5 s.
const (
	DefaultStepCount  = 50
	DefaultStepPeriod = 20 * time.Millisecond
	DefaultPause      = 500 * time.Millisecond
	DefaultMaxDuty    = 1.0
)

// Config tunes the animation.
type Config struct {
	StepCount  int           // steps per half-cycle; a half-cycle writes StepCount+1 values
	StepPeriod time.Duration // delay after each step
	Pause      time.Duration // idle time after the descending half-cycle
	MaxDuty    float64       // duty ceiling in (0,1]
}

// DefaultConfig returns the stock animation.
func DefaultConfig() Config {
	return Config{
		StepCount:  DefaultStepCount,
		StepPeriod: DefaultStepPeriod,
		Pause:      DefaultPause,
		MaxDuty:    DefaultMaxDuty,
	}
}

// Validate rejects configurations that cannot animate.
func (c Config) Validate() error {
	switch {
	case c.StepCount < 1:
		return fmt.Errorf("fade: step_count must be >= 1, got %d", c.StepCount)
	case c.StepPeriod <= 0:
		return fmt.Errorf("fade: step_period must be > 0, got %v", c.StepPeriod)
	case c.Pause < 0:
		return fmt.Errorf("fade: pause must be >= 0, got %v", c.Pause)
	case !(c.MaxDuty > 0 && c.MaxDuty <= 1):
		return fmt.Errorf("fade: max_duty must be in (0,1], got %v", c.MaxDuty)
	}
	return nil
}

// Duty is the duty for step stepIndex (0..stepCount) of a half-cycle.
func Duty(maxDuty float64, stepCount, stepIndex int, dir models.FadeDirection) float64 {
	if stepCount <= 0 {
		return 0
	}
	if dir == models.Descending {
		stepIndex = stepCount - stepIndex
	}
	// ratio first so both endpoints are exactly 0 and maxDuty
	return maxDuty * (float64(stepIndex) / float64(stepCount))
}

// HalfCycle lists every duty written by one sweep in the given direction.
func HalfCycle(c Config, dir models.FadeDirection) []float64 {
	out := make([]float64, 0, c.StepCount+1)
	for i := 0; i <= c.StepCount; i++ {
		out = append(out, Duty(c.MaxDuty, c.StepCount, i, dir))
	}
	return out
}

// ErrStopped is returned by Sweep and Pause when proceed vetoes the next step.
var ErrStopped = errors.New("fade: stopped between steps")

// Animator writes the sweep to the PWM, pacing itself with the clock.
// It is the only component that sleeps for long, so it asks proceed after
// every step whether to keep going.
type Animator struct {
	cfg   Config
	pwm   driver.PWM
	clock driver.Clock
}

// NewAnimator builds an animator for an already validated config.
func NewAnimator(cfg Config, pwm driver.PWM, clock driver.Clock) *Animator {
	return &Animator{cfg: cfg, pwm: pwm, clock: clock}
}

// Config returns the animation parameters.
func (a *Animator) Config() Config { return a.cfg }

// Sweep runs one half-cycle. onStep is called after each successful write.
// proceed is checked after each step's delay, never mid-step; when it
// returns false Sweep returns ErrStopped. A driver error aborts immediately.
func (a *Animator) Sweep(dir models.FadeDirection, onStep func(duty float64), proceed func() bool) error {
	for i := 0; i <= a.cfg.StepCount; i++ {
		duty := Duty(a.cfg.MaxDuty, a.cfg.StepCount, i, dir)
		if err := a.pwm.SetDuty(duty); err != nil {
			return err
		}
		if onStep != nil {
			onStep(duty)
		}
		a.clock.Delay(a.cfg.StepPeriod)
		if !proceed() {
			return ErrStopped
		}
	}
	return nil
}

// Pause idles for the configured pause in StepPeriod slices so a stop
// request is still seen within one step.
func (a *Animator) Pause(proceed func() bool) error {
	for left := a.cfg.Pause; left > 0; {
		d := min(a.cfg.StepPeriod, left)
		a.clock.Delay(d)
		left -= d
		if !proceed() {
			return ErrStopped
		}
	}
	return nil
}

// Off forces the output to zero.
func (a *Animator) Off() error {
	return a.pwm.SetDuty(0)
}
