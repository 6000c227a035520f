package models

import "time"

// ActuatorEvent is a single diagnostic journal entry.
type ActuatorEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // one of the Event* constants
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Journal entry types.
const (
	EventCommand  = "COMMAND"
	EventEnabled  = "ENABLED"
	EventDisabled = "DISABLED"
	EventFault    = "FAULT"
)
