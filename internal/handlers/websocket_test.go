package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"mcu_control/internal/models"
	"mcu_control/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialStatus(t *testing.T, act *mockActuator, query string) *websocket.Conn {
	t.Helper()
	r := gin.New()
	h := NewHandler(&service.Service{Actuator: act}, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) models.ActuatorStatus {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != "status" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var st models.ActuatorStatus
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	return st
}

func TestWebSocket_StatusStream_InitialAndPeriodic(t *testing.T) {
	act := &mockActuator{status: models.ActuatorStatus{
		State:     models.StateFadingUp,
		Direction: models.Ascending,
		Duty:      0.5,
		Spawned:   true,
	}}
	conn := dialStatus(t, act, "interval_ms=20")

	st := readStatus(t, conn)
	if st.State != models.StateFadingUp || st.Duty != 0.5 || !st.Spawned {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st = readStatus(t, conn); st.State != models.StateFadingUp {
		t.Fatalf("unexpected periodic status: %+v", st)
	}
}

func TestWebSocket_PushesStateChangesBeforeTheInterval(t *testing.T) {
	act := &mockActuator{status: models.ActuatorStatus{State: models.StateFadingUp}}
	conn := dialStatus(t, act, "interval=10s")

	if st := readStatus(t, conn); st.State != models.StateFadingUp {
		t.Fatalf("unexpected initial status: %+v", st)
	}
	act.setStatus(models.ActuatorStatus{State: models.StateStopped})

	start := time.Now()
	if st := readStatus(t, conn); st.State != models.StateStopped {
		t.Fatalf("expected STOPPED, got %+v", st)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("state change was not pushed promptly")
	}
}
