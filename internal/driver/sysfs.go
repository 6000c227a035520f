package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPWMPeriod   = 40 * time.Microsecond // 25 kHz
	defaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"
)

// SysfsPWM drives a Linux PWM channel exported under /sys/class/pwm.
type SysfsPWM struct {
	dir      string
	periodNs int64
}

// NewSysfsPWM configures the channel period, zeroes the duty and enables it.
// The channel must already be exported.
func NewSysfsPWM(dir string, period time.Duration) (*SysfsPWM, error) {
	if period <= 0 {
		period = defaultPWMPeriod
	}
	p := &SysfsPWM{dir: dir, periodNs: period.Nanoseconds()}

	if _, err := os.Stat(dir); err != nil {
		return nil, Wrap("pwm channel", err)
	}
	// duty_cycle must not exceed period while period changes
	if err := p.write("duty_cycle", 0); err != nil {
		return nil, err
	}
	if err := p.write("period", p.periodNs); err != nil {
		return nil, err
	}
	if err := p.write("enable", 1); err != nil {
		return nil, err
	}
	return p, nil
}

// SetDuty writes the duty as a share of the configured period.
func (p *SysfsPWM) SetDuty(fraction float64) error {
	if err := checkDuty(fraction); err != nil {
		return err
	}
	return p.write("duty_cycle", int64(fraction*float64(p.periodNs)))
}

// Close turns the output off and disables the channel.
func (p *SysfsPWM) Close() error {
	if err := p.write("duty_cycle", 0); err != nil {
		return err
	}
	return p.write("enable", 0)
}

func (p *SysfsPWM) write(attr string, v int64) error {
	path := filepath.Join(p.dir, attr)
	if err := os.WriteFile(path, []byte(strconv.FormatInt(v, 10)), 0o644); err != nil {
		return Wrap("write "+attr, err)
	}
	return nil
}

// SysfsThermal reads a thermal zone reporting millidegrees Celsius.
type SysfsThermal struct {
	path string
}

// NewSysfsThermal returns a reader for the given temp file.
func NewSysfsThermal(path string) *SysfsThermal {
	if path == "" {
		path = defaultThermalPath
	}
	return &SysfsThermal{path: path}
}

// ReadTemperature reads the zone once.
func (t *SysfsThermal) ReadTemperature() (float64, error) {
	b, err := os.ReadFile(t.path)
	if err != nil {
		return 0, Wrap("read thermal zone", err)
	}
	milli, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, Wrap("parse thermal zone", fmt.Errorf("%q: %w", t.path, err))
	}
	return float64(milli) / 1000, nil
}
