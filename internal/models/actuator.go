package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCommand is returned when a /led query is neither "on" nor "off".
var ErrInvalidCommand = errors.New("invalid command")

// ActuatorCommand is a transient on/off request built from one /led query.
type ActuatorCommand uint8

const (
	CmdTurnOn ActuatorCommand = iota + 1
	CmdTurnOff
)

// ParseCommand accepts the literal strings "on" and "off" (surrounding spaces ignored).
func ParseCommand(s string) (ActuatorCommand, error) {
	switch strings.TrimSpace(s) {
	case "on":
		return CmdTurnOn, nil
	case "off":
		return CmdTurnOff, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
	}
}

func (c ActuatorCommand) String() string {
	switch c {
	case CmdTurnOn:
		return "on"
	case CmdTurnOff:
		return "off"
	default:
		return "unknown"
	}
}

// FadeDirection is the sweep direction of the current half-cycle.
type FadeDirection string

const (
	Ascending  FadeDirection = "ASCENDING"
	Descending FadeDirection = "DESCENDING"
)

// ActuatorState is Stopped or Running in one of the two directions.
// It fits in a single word so the controller can publish it atomically.
type ActuatorState uint32

const (
	StateStopped ActuatorState = iota
	StateFadingUp
	StateFadingDown
)

// Running reports whether the fade animation is active.
func (s ActuatorState) Running() bool { return s != StateStopped }

// Direction returns the sweep direction, or "" when stopped.
func (s ActuatorState) Direction() FadeDirection {
	switch s {
	case StateFadingUp:
		return Ascending
	case StateFadingDown:
		return Descending
	default:
		return ""
	}
}

func (s ActuatorState) String() string {
	switch s {
	case StateFadingUp:
		return "FADING_UP"
	case StateFadingDown:
		return "FADING_DOWN"
	default:
		return "STOPPED"
	}
}

// MarshalText renders the state by name in JSON payloads.
func (s ActuatorState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *ActuatorState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "STOPPED":
		*s = StateStopped
	case "FADING_UP":
		*s = StateFadingUp
	case "FADING_DOWN":
		*s = StateFadingDown
	default:
		return fmt.Errorf("unknown actuator state %q", b)
	}
	return nil
}

// ActuatorStatus is a point-in-time view of the actuator, safe to copy.
type ActuatorStatus struct {
	State     ActuatorState `json:"state"`                // STOPPED | FADING_UP | FADING_DOWN
	Direction FadeDirection `json:"direction,omitempty"`  // ASCENDING | DESCENDING
	Duty      float64       `json:"duty"`                 // last duty written, 0..1
	Spawned   bool          `json:"spawned"`              // background task was started
	Faulted   bool          `json:"faulted"`              // task exited after a driver error
	Fault     string        `json:"fault,omitempty"`      // driver error text
	UpdatedAt time.Time     `json:"updated_at,omitempty"` // last transition
}
