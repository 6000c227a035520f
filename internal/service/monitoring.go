package service

import (
	"context"
	"time"

	"mcu_control/internal/models"
)

type MonitoringService struct {
	ctl    ActuatorController
	sensor Thermometer
	now    func() time.Time
}

func NewMonitoringService(ctl ActuatorController, sensor Thermometer) *MonitoringService {
	return &MonitoringService{ctl: ctl, sensor: sensor, now: time.Now}
}

// Snapshot combines the actuator status with one fresh temperature read.
// A failed read is reported in TemperatureError, not as an error.
func (s *MonitoringService) Snapshot(ctx context.Context) models.DeviceStatus {
	st := models.DeviceStatus{
		Actuator: s.ctl.Status(),
		TakenAt:  s.now().UTC(),
	}
	if err := ctx.Err(); err != nil {
		st.TemperatureError = err.Error()
		return st
	}
	c, err := s.sensor.Read()
	if err != nil {
		st.TemperatureError = err.Error()
		return st
	}
	st.TemperatureC = &c
	return st
}
