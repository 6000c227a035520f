// Package metrics exposes actuator and sensor counters in the prometheus
// exposition format.
package metrics

import (
	"net/http"

	"mcu_control/internal/events"
	"mcu_control/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mcu"

// StatusSource is satisfied by *actuator.Controller.
type StatusSource interface {
	Status() models.ActuatorStatus
}

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	commands    *prometheus.CounterVec
	faults      prometheus.Counter
	sensorReads *prometheus.CounterVec
	temperature prometheus.Gauge
}

// New registers all collectors. Duty and running are read from src on scrape.
func New(src StatusSource) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	m := &Metrics{
		reg: reg,
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actuator",
			Name:      "commands_total",
			Help:      "Commands queued for the fade task",
		}, []string{"command"}),
		faults: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actuator",
			Name:      "faults_total",
			Help:      "Fade task terminations caused by a driver error",
		}),
		sensorReads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sensor",
			Name:      "reads_total",
			Help:      "Chip temperature reads by result",
		}, []string{"result"}),
		temperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sensor",
			Name:      "temperature_celsius",
			Help:      "Last successfully read chip temperature",
		}),
	}

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "actuator",
		Name:      "duty",
		Help:      "Current LED duty cycle in [0,1]",
	}, func() float64 { return src.Status().Duty })

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "actuator",
		Name:      "running",
		Help:      "1 while the fade animation is active",
	}, func() float64 {
		if src.Status().State.Running() {
			return 1
		}
		return 0
	})

	return m
}

// Attach feeds the collectors from bus and returns a detach function.
func (m *Metrics) Attach(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(func(e events.CommandAccepted) { m.ObserveCommand(e.Command) }),
		bus.Subscribe(func(events.TaskFaulted) { m.faults.Inc() }),
		bus.Subscribe(func(e events.TemperatureRead) { m.ObserveTemperature(e.Celsius, e.Err) }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// ObserveCommand counts one queued command.
func (m *Metrics) ObserveCommand(cmd models.ActuatorCommand) {
	m.commands.WithLabelValues(cmd.String()).Inc()
}

// ObserveTemperature counts a read; the gauge keeps the last good value.
func (m *Metrics) ObserveTemperature(celsius float64, errMsg string) {
	if errMsg != "" {
		m.sensorReads.WithLabelValues("error").Inc()
		return
	}
	m.sensorReads.WithLabelValues("ok").Inc()
	m.temperature.Set(celsius)
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
