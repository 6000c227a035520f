package driver

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Simulated chip temperature model.
const (
	simAmbientC   = 40.0 // idle die temperature
	simLoadC      = 8.0  // extra heat at full duty
	simNoiseC     = 0.25 // per-read jitter amplitude
	simSettleRate = 0.2  // fraction of the gap closed per read
)

// Sim is an in-memory PWM and thermometer pair. The LED load warms the die.
type Sim struct {
	mu    sync.Mutex
	duty  float64
	tempC float64
	now   func() time.Time
}

// NewSim returns a simulated backend idling at ambient temperature.
func NewSim() *Sim {
	return &Sim{tempC: simAmbientC, now: time.Now}
}

// SetDuty records the requested duty.
func (s *Sim) SetDuty(fraction float64) error {
	if err := checkDuty(fraction); err != nil {
		return err
	}
	s.mu.Lock()
	s.duty = fraction
	s.mu.Unlock()
	return nil
}

// Duty returns the last duty written.
func (s *Sim) Duty() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duty
}

// ReadTemperature moves the simulated die temperature toward its load target.
func (s *Sim) ReadTemperature() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := simAmbientC + simLoadC*s.duty
	s.tempC += (target - s.tempC) * simSettleRate
	noise := (rand.Float64()*2 - 1) * simNoiseC
	return math.Round((s.tempC+noise)*100) / 100, nil
}
