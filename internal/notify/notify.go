// Package notify publishes actuator transitions to an MQTT broker.
package notify

import (
	"encoding/json"
	"sync"
	"time"

	"mcu_control/internal/events"
	"mcu_control/internal/logger"
	"mcu_control/internal/models"
)

// DefaultTopic is used when mqtt.topic is not configured.
const DefaultTopic = "mcu/led/state"

// Publisher sends a ready payload to the broker.
type Publisher interface {
	// Publish returns an error on failure; callers log it and carry on.
	Publish(payload []byte) error
	Close() error
}

// Payload is the retained state message.
type Payload struct {
	State     string  `json:"state"`
	Direction string  `json:"direction,omitempty"`
	Duty      float64 `json:"duty"`
	Fault     string  `json:"fault,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// FormatState builds the payload for a state transition.
func FormatState(e events.StateChanged) ([]byte, error) {
	return json.Marshal(Payload{
		State:     e.State.String(),
		Direction: string(e.State.Direction()),
		Duty:      e.Duty,
		Timestamp: e.At.UTC().Format(time.RFC3339),
	})
}

// FormatFault builds the payload for a fade task fault. The LED is left stopped.
func FormatFault(e events.TaskFaulted) ([]byte, error) {
	return json.Marshal(Payload{
		State:     models.StateStopped.String(),
		Fault:     e.Err,
		Timestamp: e.At.UTC().Format(time.RFC3339),
	})
}

// Notifier bridges bus events to a Publisher.
type Notifier struct {
	pub Publisher
	log *logger.Logger
	mu  sync.Mutex // serializes Publish
}

// NewNotifier returns a Notifier. log may be nil.
func NewNotifier(pub Publisher, log *logger.Logger) *Notifier {
	return &Notifier{pub: pub, log: log}
}

// Attach subscribes to StateChanged and TaskFaulted and returns a detach function.
func (n *Notifier) Attach(bus *events.Bus) func() {
	unsubState := bus.Subscribe(func(e events.StateChanged) {
		n.send("state", func() ([]byte, error) { return FormatState(e) })
	})
	unsubFault := bus.Subscribe(func(e events.TaskFaulted) {
		n.send("fault", func() ([]byte, error) { return FormatFault(e) })
	})
	return func() {
		unsubState()
		unsubFault()
	}
}

func (n *Notifier) send(kind string, format func() ([]byte, error)) {
	payload, err := format()
	if err == nil {
		n.mu.Lock()
		err = n.pub.Publish(payload)
		n.mu.Unlock()
	}
	if err != nil && n.log != nil {
		n.log.Warnw("mqtt_publish_failed", "kind", kind, "err", err)
	}
}

// Nop discards everything. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish([]byte) error { return nil }
func (Nop) Close() error         { return nil }
