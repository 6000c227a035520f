package service

import (
	"errors"

	"mcu_control/internal/actuator"
	"mcu_control/internal/logger"
	"mcu_control/internal/models"
)

type LedService struct {
	ctl ActuatorController
	log *logger.Logger
}

func NewLedService(ctl ActuatorController, log *logger.Logger) *LedService {
	return &LedService{ctl: ctl, log: log}
}

// Command returns models.ErrInvalidCommand for anything but "on" / "off" and
// actuator.ErrChannelClosed once the fade task is gone.
func (s *LedService) Command(raw string) (actuator.Ack, error) {
	cmd, err := models.ParseCommand(raw)
	if err != nil {
		return actuator.Ack{}, err
	}

	ack, err := s.ctl.Submit(cmd)
	if err != nil {
		if s.log != nil && errors.Is(err, actuator.ErrChannelClosed) {
			s.log.Warnw("led_command_rejected", "command", cmd.String(), "err", err)
		}
		return ack, err
	}
	if s.log != nil {
		s.log.Infow("led_command_accepted", "command", cmd.String(), "queued", ack.Queued)
	}
	return ack, nil
}

func (s *LedService) Status() models.ActuatorStatus {
	return s.ctl.Status()
}
