// Package driver is the peripheral layer the service controls: one PWM
// output for the LED, one temperature sensor and a blocking delay.
// Real backends talk to Linux sysfs or a GPIO character device; the sim
// backend lets the service run on a desktop; fakes drive the tests.
package driver

import (
	"errors"
	"fmt"
	"time"
)

// ErrDriver marks every peripheral I/O failure (sensor read or duty write).
var ErrDriver = errors.New("driver error")

// PWM drives the actuator output.
type PWM interface {
	// SetDuty sets the output duty cycle as a fraction in [0,1].
	SetDuty(fraction float64) error
}

// Thermometer reads the on-board temperature sensor.
type Thermometer interface {
	// ReadTemperature performs one blocking read and returns degrees Celsius.
	ReadTemperature() (float64, error)
}

// Clock provides the blocking delay used between animation steps.
type Clock interface {
	Delay(d time.Duration)
}

// SystemClock sleeps on the wall clock.
type SystemClock struct{}

// Delay blocks the calling goroutine for d.
func (SystemClock) Delay(d time.Duration) { time.Sleep(d) }

// Wrap tags err as a driver error unless it already is one.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDriver) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDriver, err)
}

// checkDuty rejects fractions outside [0,1] (NaN included).
func checkDuty(fraction float64) error {
	if !(fraction >= 0 && fraction <= 1) {
		return fmt.Errorf("%w: duty %v out of range [0,1]", ErrDriver, fraction)
	}
	return nil
}
