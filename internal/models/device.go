package models

import "time"

// DeviceStatus is a point-in-time view of the board.
type DeviceStatus struct {
	Actuator         ActuatorStatus `json:"actuator"`
	TemperatureC     *float64       `json:"temperature_c,omitempty"`
	TemperatureError string         `json:"temperature_error,omitempty"`
	TakenAt          time.Time      `json:"taken_at"`
}
