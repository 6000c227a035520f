package service

import (
	"context"
	"sync"
	"time"

	"mcu_control/internal/events"
	"mcu_control/internal/logger"
	"mcu_control/internal/models"
	"mcu_control/internal/repository"
)

const journalWriteTimeout = 2 * time.Second

// Journal copies actuator events from the bus into the diagnostic journal.
// Nothing reads the journal back to restore state.
type Journal struct {
	repo repository.EventRepo
	log  *logger.Logger

	mu   sync.Mutex
	last models.ActuatorState
}

func NewJournal(repo repository.EventRepo, log *logger.Logger) *Journal {
	return &Journal{repo: repo, log: log}
}

// Attach subscribes to bus and returns a function that detaches again.
func (j *Journal) Attach(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(j.onCommand),
		bus.Subscribe(j.onState),
		bus.Subscribe(j.onFault),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (j *Journal) onCommand(e events.CommandAccepted) {
	cmd := e.Command.String()
	j.append(models.ActuatorEvent{
		OccurredAt:  e.At,
		Type:        models.EventCommand,
		Description: "command " + cmd + " accepted",
		Metadata:    map[string]string{"command": cmd},
	})
}

// onState records only the edges between stopped and fading; direction
// flips inside a running fade are not journaled.
func (j *Journal) onState(e events.StateChanged) {
	j.mu.Lock()
	prev := j.last
	j.last = e.State
	j.mu.Unlock()

	switch {
	case e.State.Running() && !prev.Running():
		j.append(models.ActuatorEvent{OccurredAt: e.At, Type: models.EventEnabled, Description: "fade started"})
	case !e.State.Running() && prev.Running():
		j.append(models.ActuatorEvent{
			OccurredAt:  e.At,
			Type:        models.EventDisabled,
			Description: "fade stopped",
			Metadata:    map[string]any{"duty": e.Duty},
		})
	}
}

func (j *Journal) onFault(e events.TaskFaulted) {
	j.append(models.ActuatorEvent{
		OccurredAt:  e.At,
		Type:        models.EventFault,
		Description: "fade task terminated by driver error",
		Metadata:    map[string]string{"error": e.Err},
	})
}

func (j *Journal) append(ev models.ActuatorEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
	defer cancel()
	if err := j.repo.Append(ctx, ev); err != nil && j.log != nil {
		j.log.Warnw("journal_append_failed", "type", ev.Type, "err", err)
	}
}
