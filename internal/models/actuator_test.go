package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in      string
		want    ActuatorCommand
		wantErr bool
	}{
		{"on", CmdTurnOn, false},
		{"off", CmdTurnOff, false},
		{" on ", CmdTurnOn, false},
		{"ON", 0, true},
		{"banana", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseCommand(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidCommand) {
				t.Fatalf("ParseCommand(%q): expected ErrInvalidCommand, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseCommand(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestActuatorState_Direction(t *testing.T) {
	if StateStopped.Running() || StateStopped.Direction() != "" {
		t.Fatalf("stopped state must not be running")
	}
	if !StateFadingUp.Running() || StateFadingUp.Direction() != Ascending {
		t.Fatalf("fading up: got %v", StateFadingUp.Direction())
	}
	if StateFadingDown.Direction() != Descending {
		t.Fatalf("fading down: got %v", StateFadingDown.Direction())
	}
}

func TestActuatorStatus_JSONStateByName(t *testing.T) {
	b, err := json.Marshal(ActuatorStatus{State: StateFadingDown, Direction: Descending, Duty: 0.5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["state"] != "FADING_DOWN" || out["direction"] != "DESCENDING" {
		t.Fatalf("unexpected payload: %s", b)
	}
}

func TestActuatorState_UnmarshalText(t *testing.T) {
	var st ActuatorStatus
	if err := json.Unmarshal([]byte(`{"state":"FADING_UP","duty":0.2}`), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.State != StateFadingUp || st.Duty != 0.2 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if err := json.Unmarshal([]byte(`{"state":"BLINKING"}`), &st); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}
