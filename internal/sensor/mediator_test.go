package sensor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"mcu_control/internal/driver"
	"mcu_control/internal/events"
)

func TestRead_ReturnsValue(t *testing.T) {
	m := New(driver.NewFakeThermometer(41.5, 42.25), nil, nil)

	for _, want := range []float64{41.5, 42.25, 42.25} {
		got, err := m.Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got != want {
			t.Fatalf("Read = %v, want %v", got, want)
		}
	}
}

func TestRead_DriverErrorReleasesGuard(t *testing.T) {
	therm := driver.NewFakeThermometer(40)
	therm.ReadError = errors.New("adc busy")
	m := New(therm, nil, nil)

	if _, err := m.Read(); !errors.Is(err, driver.ErrDriver) {
		t.Fatalf("expected ErrDriver, got %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Read()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("guard was not released after a failed read")
	}
	if therm.Reads() != 2 {
		t.Fatalf("expected 2 reads, got %d", therm.Reads())
	}
}

func TestRead_ConcurrentCallersAreSerialized(t *testing.T) {
	therm := driver.NewFakeThermometer(38.0)
	therm.Hold = 5 * time.Millisecond
	m := New(therm, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Read(); err != nil {
				t.Errorf("Read: %v", err)
			}
		}()
	}
	wg.Wait()

	if therm.Reads() != 10 {
		t.Fatalf("expected 10 reads, got %d", therm.Reads())
	}
	if therm.MaxInFlight() != 1 {
		t.Fatalf("reads overlapped: max in flight %d", therm.MaxInFlight())
	}
}

func TestRead_PublishesEvent(t *testing.T) {
	bus := events.New()
	defer bus.Close()
	got := make(chan events.TemperatureRead, 2)
	defer bus.Subscribe(func(e events.TemperatureRead) { got <- e })()

	therm := driver.NewFakeThermometer(39.5)
	m := New(therm, bus, nil)
	if _, err := m.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}

	select {
	case e := <-got:
		if e.Celsius != 39.5 || e.Err != "" || e.At.IsZero() {
			t.Fatalf("unexpected event: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatalf("TemperatureRead not published")
	}

	therm.ReadError = errors.New("adc busy")
	_, _ = m.Read()
	select {
	case e := <-got:
		if e.Err == "" {
			t.Fatalf("failed read must carry its error: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatalf("failed TemperatureRead not published")
	}
}
