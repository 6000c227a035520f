// Package events fans actuator and sensor happenings out to the journal,
// metrics and MQTT without the producers knowing about them.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting.
// Delivery is asynchronous: Publish never waits on subscribers.
// A nil *Bus is valid and drops everything.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case StateChanged:
		event.Publish(b.dispatcher, e)
	case TaskFaulted:
		event.Publish(b.dispatcher, e)
	case CommandAccepted:
		event.Publish(b.dispatcher, e)
	case TemperatureRead:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter
// and returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e StateChanged) { ... })
func (b *Bus) Subscribe(handler any) func() {
	if b == nil {
		return func() {}
	}
	switch h := handler.(type) {
	case func(StateChanged):
		return event.Subscribe(b.dispatcher, h)
	case func(TaskFaulted):
		return event.Subscribe(b.dispatcher, h)
	case func(CommandAccepted):
		return event.Subscribe(b.dispatcher, h)
	case func(TemperatureRead):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	return b.dispatcher.Close()
}
