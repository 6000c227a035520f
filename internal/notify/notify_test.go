package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mcu_control/internal/events"
	"mcu_control/internal/models"
)

var at = time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

func TestFormatState(t *testing.T) {
	tests := []struct {
		state     models.ActuatorState
		wantState string
		wantDir   string
	}{
		{models.StateFadingUp, "FADING_UP", "ASCENDING"},
		{models.StateFadingDown, "FADING_DOWN", "DESCENDING"},
		{models.StateStopped, "STOPPED", ""},
	}
	for _, tt := range tests {
		t.Run(tt.wantState, func(t *testing.T) {
			b, err := FormatState(events.StateChanged{State: tt.state, Duty: 0.5, At: at})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var p Payload
			if err := json.Unmarshal(b, &p); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if p.State != tt.wantState || p.Direction != tt.wantDir {
				t.Errorf("got state=%q direction=%q", p.State, p.Direction)
			}
			if p.Duty != 0.5 || p.Timestamp != "2026-05-02T09:30:00Z" || p.Fault != "" {
				t.Errorf("unexpected payload: %+v", p)
			}
		})
	}
}

func TestFormatFault(t *testing.T) {
	b, err := FormatFault(events.TaskFaulted{Err: "driver error: write duty_cycle", At: at})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if p.State != "STOPPED" || p.Fault != "driver error: write duty_cycle" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func waitPayloads(t *testing.T, f *FakePublisher, n int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := f.Payloads(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d payloads, got %d", n, len(f.Payloads()))
	return nil
}

func TestNotifier_PublishesStateAndFault(t *testing.T) {
	bus := events.New()
	defer bus.Close()
	pub := &FakePublisher{}
	detach := NewNotifier(pub, nil).Attach(bus)
	defer detach()

	bus.Publish(events.StateChanged{State: models.StateFadingUp, At: at})
	waitPayloads(t, pub, 1)
	bus.Publish(events.TaskFaulted{Err: "boom", At: at})
	got := waitPayloads(t, pub, 2)

	var first, second Payload
	_ = json.Unmarshal(got[0], &first)
	_ = json.Unmarshal(got[1], &second)
	if first.State != "FADING_UP" {
		t.Errorf("first payload: %+v", first)
	}
	if second.Fault != "boom" {
		t.Errorf("second payload: %+v", second)
	}
}

func TestNotifier_PublishErrorIsNotFatal(t *testing.T) {
	bus := events.New()
	defer bus.Close()
	pub := &FakePublisher{PublishError: errors.New("broker down")}
	detach := NewNotifier(pub, nil).Attach(bus)

	bus.Publish(events.StateChanged{State: models.StateFadingUp, At: at})
	time.Sleep(20 * time.Millisecond)
	detach()

	if len(pub.Payloads()) != 0 {
		t.Fatalf("nothing should be recorded on error")
	}
}

func TestNotifier_IgnoresOtherEvents(t *testing.T) {
	bus := events.New()
	defer bus.Close()
	pub := &FakePublisher{}
	defer NewNotifier(pub, nil).Attach(bus)()

	bus.Publish(events.CommandAccepted{Command: models.CmdTurnOn, At: at})
	bus.Publish(events.TemperatureRead{Celsius: 40, At: at})
	time.Sleep(30 * time.Millisecond)
	if n := len(pub.Payloads()); n != 0 {
		t.Fatalf("expected no payloads, got %d", n)
	}
}

func TestNewPahoPublisher_RequiresBroker(t *testing.T) {
	if _, err := NewPahoPublisher(Options{}); err == nil {
		t.Fatalf("expected error without broker")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
