package service

import (
	"errors"
	"testing"

	"mcu_control/internal/actuator"
	"mcu_control/internal/models"
)

type fakeController struct {
	submitted []models.ActuatorCommand
	ack       actuator.Ack
	err       error
	status    models.ActuatorStatus
}

func (f *fakeController) Submit(cmd models.ActuatorCommand) (actuator.Ack, error) {
	f.submitted = append(f.submitted, cmd)
	if f.err != nil {
		return actuator.Ack{}, f.err
	}
	ack := f.ack
	ack.Command = cmd
	return ack, nil
}

func (f *fakeController) Status() models.ActuatorStatus { return f.status }

func TestLedService_Command(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		ctlErr     error
		wantCmd    models.ActuatorCommand
		wantErr    error
		wantSubmit bool
	}{
		{name: "on", raw: "on", wantCmd: models.CmdTurnOn, wantSubmit: true},
		{name: "off with spaces", raw: " off ", wantCmd: models.CmdTurnOff, wantSubmit: true},
		{name: "unknown", raw: "blink", wantErr: models.ErrInvalidCommand},
		{name: "empty", raw: "", wantErr: models.ErrInvalidCommand},
		{name: "upper case is not a command", raw: "ON", wantErr: models.ErrInvalidCommand},
		{name: "task gone", raw: "on", ctlErr: actuator.ErrChannelClosed, wantErr: actuator.ErrChannelClosed, wantSubmit: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := &fakeController{ack: actuator.Ack{Queued: true}, err: tc.ctlErr}
			ack, err := NewLedService(ctl, nil).Command(tc.raw)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if submitted := len(ctl.submitted) == 1; submitted != tc.wantSubmit {
				t.Fatalf("submitted=%v, want %v", ctl.submitted, tc.wantSubmit)
			}
			if tc.wantErr == nil && ack.Command != tc.wantCmd {
				t.Fatalf("ack command %v, want %v", ack.Command, tc.wantCmd)
			}
		})
	}
}

func TestLedService_StatusPassesThrough(t *testing.T) {
	want := models.ActuatorStatus{State: models.StateFadingDown, Direction: models.Descending, Duty: 0.4, Spawned: true}
	got := NewLedService(&fakeController{status: want}, nil).Status()
	if got != want {
		t.Fatalf("Status = %+v, want %+v", got, want)
	}
}
