//go:build linux

package driver

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// gpioHighThreshold is the duty at and above which the line is driven high.
const gpioHighThreshold = 0.5

// GPIOLine drives an LED wired to a plain GPIO output. It has no PWM, so the
// fade degrades to a blink: duty >= 0.5 is high, anything lower is low.
type GPIOLine struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewGPIOLine requests the line as an output, initially low.
func NewGPIOLine(chipName string, offset int) (*GPIOLine, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("mcu-control"))
	if err != nil {
		return nil, Wrap("open gpio chip", err)
	}
	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, Wrap(fmt.Sprintf("request line %d", offset), err)
	}
	return &GPIOLine{chip: chip, line: line}, nil
}

// SetDuty thresholds the fraction onto the line.
func (g *GPIOLine) SetDuty(fraction float64) error {
	if err := checkDuty(fraction); err != nil {
		return err
	}
	v := 0
	if fraction >= gpioHighThreshold {
		v = 1
	}
	if err := g.line.SetValue(v); err != nil {
		return Wrap("set line", err)
	}
	return nil
}

// Close drives the line low and releases it.
func (g *GPIOLine) Close() error {
	var errs []error
	if g.line != nil {
		if err := g.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("set line low: %w", err))
		}
		if err := g.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
