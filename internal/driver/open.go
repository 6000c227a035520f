package driver

import (
	"fmt"
	"io"
	"time"
)

// Backend kinds selectable from configuration.
const (
	KindSim   = "sim"
	KindSysfs = "sysfs"
	KindGPIO  = "gpio"
)

// Options selects and parameterizes a backend.
type Options struct {
	Kind        string
	PWMPath     string
	PWMPeriod   time.Duration
	ThermalPath string
	GPIOChip    string
	GPIOLine    int
}

// Set is the opened peripheral set. Close releases whatever the backend holds.
type Set struct {
	PWM         PWM
	Thermometer Thermometer
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open acquires the peripherals once at startup; they are held for the
// life of the process.
func Open(o Options) (*Set, error) {
	switch o.Kind {
	case KindSim, "":
		sim := NewSim()
		return &Set{PWM: sim, Thermometer: sim, Closer: nopCloser{}}, nil

	case KindSysfs:
		pwm, err := NewSysfsPWM(o.PWMPath, o.PWMPeriod)
		if err != nil {
			return nil, err
		}
		return &Set{PWM: pwm, Thermometer: NewSysfsThermal(o.ThermalPath), Closer: pwm}, nil

	case KindGPIO:
		line, err := NewGPIOLine(o.GPIOChip, o.GPIOLine)
		if err != nil {
			return nil, err
		}
		// GPIO boards have no dedicated sensor path; fall back to the thermal zone.
		return &Set{PWM: line, Thermometer: NewSysfsThermal(o.ThermalPath), Closer: line}, nil

	default:
		return nil, fmt.Errorf("unknown driver kind %q", o.Kind)
	}
}
