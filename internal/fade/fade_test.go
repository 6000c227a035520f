package fade

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"mcu_control/internal/driver"
	"mcu_control/internal/models"
)

// recordingClock returns immediately and remembers every delay.
type recordingClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *recordingClock) Delay(d time.Duration) {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()
}

func always() bool { return true }

func TestHalfCycle_MonotonicInclusive(t *testing.T) {
	for _, steps := range []int{1, 2, 5, 50, 255} {
		for _, maxDuty := range []float64{0.3, 1} {
			cfg := Config{StepCount: steps, StepPeriod: time.Millisecond, MaxDuty: maxDuty}

			up := HalfCycle(cfg, models.Ascending)
			if len(up) != steps+1 {
				t.Fatalf("steps=%d: got %d values", steps, len(up))
			}
			if up[0] != 0 || up[steps] != maxDuty {
				t.Fatalf("steps=%d: endpoints %v..%v", steps, up[0], up[steps])
			}
			for i := 1; i < len(up); i++ {
				if !(up[i] > up[i-1]) {
					t.Fatalf("steps=%d: ascending not strictly increasing at %d: %v", steps, i, up)
				}
			}

			down := HalfCycle(cfg, models.Descending)
			if down[0] != maxDuty || down[steps] != 0 {
				t.Fatalf("steps=%d: descending endpoints %v..%v", steps, down[0], down[steps])
			}
			for i := 1; i < len(down); i++ {
				if !(down[i] < down[i-1]) {
					t.Fatalf("steps=%d: descending not strictly decreasing at %d", steps, i)
				}
			}
		}
	}
}

func TestDuty_Formula(t *testing.T) {
	if got := Duty(0.8, 4, 1, models.Ascending); got != 0.2 {
		t.Fatalf("ascending: got %v", got)
	}
	if got := Duty(0.8, 4, 1, models.Descending); math.Abs(got-0.6) > 1e-12 {
		t.Fatalf("descending: got %v", got)
	}
	if got := Duty(1, 0, 0, models.Ascending); got != 0 {
		t.Fatalf("zero steps: got %v", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []Config{
		{StepCount: 0, StepPeriod: time.Millisecond, MaxDuty: 1},
		{StepCount: 5, StepPeriod: 0, MaxDuty: 1},
		{StepCount: 5, StepPeriod: time.Millisecond, Pause: -1, MaxDuty: 1},
		{StepCount: 5, StepPeriod: time.Millisecond, MaxDuty: 0},
		{StepCount: 5, StepPeriod: time.Millisecond, MaxDuty: 1.5},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, c)
		}
	}
}

func TestAnimator_SweepWritesEveryStepThenDelays(t *testing.T) {
	pwm := driver.NewFakePWM()
	clk := &recordingClock{}
	cfg := Config{StepCount: 4, StepPeriod: 20 * time.Millisecond, MaxDuty: 1}
	a := NewAnimator(cfg, pwm, clk)

	var seen []float64
	if err := a.Sweep(models.Ascending, func(d float64) { seen = append(seen, d) }, always); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	got := pwm.Writes()
	if len(got) != len(want) || len(seen) != len(want) {
		t.Fatalf("writes=%v seen=%v", got, seen)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("write %d = %v, want %v", i, got[i], want[i])
		}
	}
	if len(clk.delays) != len(want) {
		t.Fatalf("expected one delay per step, got %d", len(clk.delays))
	}
}

func TestAnimator_SweepStopsBetweenSteps(t *testing.T) {
	pwm := driver.NewFakePWM()
	a := NewAnimator(Config{StepCount: 10, StepPeriod: time.Millisecond, MaxDuty: 1}, pwm, &recordingClock{})

	checks := 0
	err := a.Sweep(models.Ascending, nil, func() bool {
		checks++
		return checks < 3
	})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if pwm.Count() != 3 {
		t.Fatalf("expected 3 completed steps, got %d", pwm.Count())
	}
}

func TestAnimator_SweepDriverErrorAborts(t *testing.T) {
	pwm := driver.NewFakePWM()
	pwm.FailOn = 2
	a := NewAnimator(Config{StepCount: 10, StepPeriod: time.Millisecond, MaxDuty: 1}, pwm, &recordingClock{})

	err := a.Sweep(models.Descending, nil, always)
	if !errors.Is(err, driver.ErrDriver) {
		t.Fatalf("expected driver error, got %v", err)
	}
	if pwm.Count() != 1 {
		t.Fatalf("expected 1 write before the failure, got %d", pwm.Count())
	}
}

func TestAnimator_PauseSlicedByStepPeriod(t *testing.T) {
	clk := &recordingClock{}
	a := NewAnimator(Config{StepCount: 1, StepPeriod: 20 * time.Millisecond, Pause: 50 * time.Millisecond, MaxDuty: 1}, driver.NewFakePWM(), clk)

	if err := a.Pause(always); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	want := []time.Duration{20 * time.Millisecond, 20 * time.Millisecond, 10 * time.Millisecond}
	if len(clk.delays) != len(want) {
		t.Fatalf("delays = %v", clk.delays)
	}
	for i := range want {
		if clk.delays[i] != want[i] {
			t.Fatalf("delay %d = %v, want %v", i, clk.delays[i], want[i])
		}
	}

	clk.delays = nil
	if err := a.Pause(func() bool { return false }); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if len(clk.delays) != 1 {
		t.Fatalf("stop should be seen after the first slice, got %d delays", len(clk.delays))
	}
}
