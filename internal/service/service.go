package service

import (
	"context"
	"time"

	"mcu_control/internal/actuator"
	"mcu_control/internal/logger"
	"mcu_control/internal/models"
	"mcu_control/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Actuator is the LED as the handlers see it.
type Actuator interface {
	// Command parses raw ("on" / "off") and submits it without waiting
	// for the animation.
	Command(raw string) (actuator.Ack, error)
	Status() models.ActuatorStatus
}

// Thermometer reads the chip temperature, serialized with every other reader.
type Thermometer interface {
	Read() (float64, error)
}

// Monitoring builds read-only device snapshots.
type Monitoring interface {
	Snapshot(ctx context.Context) models.DeviceStatus
}

// EventLog exposes the diagnostic journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActuatorEvent, error)
}

// Sampler reads the sensor periodically until ctx is canceled.
type Sampler interface {
	Run(ctx context.Context, tick time.Duration)
}

// ActuatorController is satisfied by *actuator.Controller.
type ActuatorController interface {
	Submit(cmd models.ActuatorCommand) (actuator.Ack, error)
	Status() models.ActuatorStatus
}

// Deps are the long-lived hardware facing components.
type Deps struct {
	Controller ActuatorController
	Sensor     Thermometer // *sensor.Mediator
	Auth       AuthConfig
	Log        *logger.Logger
}

type Service struct {
	Actuator
	Thermometer
	Monitoring
	EventLog
	Sampler
	Authorization
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Actuator:      NewLedService(deps.Controller, deps.Log),
		Thermometer:   deps.Sensor,
		Monitoring:    NewMonitoringService(deps.Controller, deps.Sensor),
		EventLog:      NewEventLogService(repos.EventRepo),
		Sampler:       NewSamplerService(deps.Sensor, deps.Log),
		Authorization: NewAuthService(repos.Auth, deps.Auth),
	}
}
