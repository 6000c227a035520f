package service

import (
	"context"
	"testing"
	"time"

	"mcu_control/internal/driver"
	"mcu_control/internal/sensor"
)

func TestSamplerService_ReadsUntilCanceled(t *testing.T) {
	therm := driver.NewFakeThermometer(41)
	svc := NewSamplerService(sensor.New(therm, nil, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(ctx, 2*time.Millisecond)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for therm.Reads() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("sampler did not read, reads=%d", therm.Reads())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestSamplerService_DisabledByZeroTick(t *testing.T) {
	therm := driver.NewFakeThermometer(41)
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewSamplerService(sensor.New(therm, nil, nil), nil).Run(context.Background(), 0)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run must return at once when disabled")
	}
	if therm.Reads() != 0 {
		t.Fatalf("expected no reads, got %d", therm.Reads())
	}
}
