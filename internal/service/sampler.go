package service

import (
	"context"
	"time"

	"mcu_control/internal/logger"
)

// SamplerService reads the sensor on a ticker so that metrics keep a recent
// temperature even when nobody calls /temperature.
type SamplerService struct {
	sensor Thermometer
	log    *logger.Logger
}

func NewSamplerService(sensor Thermometer, log *logger.Logger) *SamplerService {
	return &SamplerService{sensor: sensor, log: log}
}

// Run ticks at the given interval until ctx is canceled. A non-positive tick
// disables sampling.
func (s *SamplerService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		return
	}
	t := time.NewTicker(tick)
	defer t.Stop()

	failing := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, err := s.sensor.Read()
			switch {
			case err != nil && !failing:
				failing = true
				if s.log != nil {
					s.log.Warnw("sensor_sampling_failing", "err", err)
				}
			case err == nil && failing:
				failing = false
				if s.log != nil {
					s.log.Infow("sensor_sampling_recovered")
				}
			}
		}
	}
}
