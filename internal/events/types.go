package events

import (
	"time"

	"mcu_control/internal/models"
)

// Event type constants for kelindar/event.
const (
	TypeStateChanged uint32 = iota + 1
	TypeTaskFaulted
	TypeCommandAccepted
	TypeTemperatureRead
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// StateChanged is emitted by the fade task on every Stopped/Running transition
// and on every direction reversal.
type StateChanged struct {
	State models.ActuatorState
	Duty  float64
	At    time.Time
}

// Type returns the event type identifier for StateChanged.
func (e StateChanged) Type() uint32 { return TypeStateChanged }

// TaskFaulted is emitted once when a duty write fails and the fade task exits.
type TaskFaulted struct {
	Err string
	At  time.Time
}

// Type returns the event type identifier for TaskFaulted.
func (e TaskFaulted) Type() uint32 { return TypeTaskFaulted }

// CommandAccepted is emitted when a command has been queued for the fade task.
type CommandAccepted struct {
	Command models.ActuatorCommand
	At      time.Time
}

// Type returns the event type identifier for CommandAccepted.
func (e CommandAccepted) Type() uint32 { return TypeCommandAccepted }

// TemperatureRead is emitted after every sensor read. Err is empty on success.
type TemperatureRead struct {
	Celsius float64
	Err     string
	At      time.Time
}

// Type returns the event type identifier for TemperatureRead.
func (e TemperatureRead) Type() uint32 { return TypeTemperatureRead }
