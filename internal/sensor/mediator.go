// Package sensor serializes access to the single on-chip temperature sensor.
package sensor

import (
	"sync"
	"time"

	"mcu_control/internal/driver"
	"mcu_control/internal/events"
	"mcu_control/internal/logger"
)

// Mediator lets any number of request goroutines read one Thermometer,
// one read at a time.
type Mediator struct {
	mu    sync.Mutex
	therm driver.Thermometer
	bus   *events.Bus
	log   *logger.Logger
	now   func() time.Time
}

// New wraps therm. bus and log may be nil.
func New(therm driver.Thermometer, bus *events.Bus, log *logger.Logger) *Mediator {
	return &Mediator{therm: therm, bus: bus, log: log, now: time.Now}
}

// Read performs exactly one blocking read in degrees Celsius. The guard is
// released on every path, driver errors included.
func (m *Mediator) Read() (float64, error) {
	celsius, err := m.read()

	ev := events.TemperatureRead{Celsius: celsius, At: m.now()}
	if err != nil {
		ev.Err = err.Error()
		if m.log != nil {
			m.log.Warnw("temperature_read_failed", "err", err)
		}
	}
	m.bus.Publish(ev)
	return celsius, err
}

func (m *Mediator) read() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.therm.ReadTemperature()
}
