//go:build !linux

package driver

import "errors"

// GPIOLine is not available on non-Linux platforms.
type GPIOLine struct{}

// NewGPIOLine returns an error on non-Linux platforms.
func NewGPIOLine(string, int) (*GPIOLine, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// SetDuty is not implemented on non-Linux platforms.
func (g *GPIOLine) SetDuty(float64) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (g *GPIOLine) Close() error {
	return nil
}
