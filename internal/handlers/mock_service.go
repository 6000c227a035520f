package handlers

import (
	"context"
	"net/http"
	"sync"

	"mcu_control/internal/actuator"
	"mcu_control/internal/models"
	"mcu_control/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockActuator struct {
	mu       sync.Mutex
	ack      actuator.Ack
	err      error
	status   models.ActuatorStatus
	commands []string
}

func (m *mockActuator) Command(raw string) (actuator.Ack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, raw)
	return m.ack, m.err
}

func (m *mockActuator) Status() models.ActuatorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *mockActuator) setStatus(st models.ActuatorStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = st
}

type mockThermometer struct {
	value float64
	err   error
	reads int
}

func (m *mockThermometer) Read() (float64, error) {
	m.reads++
	return m.value, m.err
}

type mockMonitoring struct {
	snap models.DeviceStatus
}

func (m *mockMonitoring) Snapshot(context.Context) models.DeviceStatus { return m.snap }

type mockEventLog struct {
	resp       []models.ActuatorEvent
	err        error
	lastFilter service.LogFilter
	calls      int
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.ActuatorEvent, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
