package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mcu_control/internal/models"
	"mcu_control/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.ActuatorEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventCommand, Description: "command on accepted"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventEnabled, Description: "fade started"},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{Authorization: auth, EventLog: logs})

	for _, bad := range []string{
		"/api/v1/logs?from=notatime",
		"/api/v1/logs?to=yesterday",
		"/api/v1/logs?limit=0",
		"/api/v1/logs?limit=5000",
		"/api/v1/logs?limit=ten",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authed(http.MethodGet, bad, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", bad, w.Code)
		}
	}
	if logs.calls != 0 {
		t.Fatalf("service must not be called for invalid queries")
	}

	w := httptest.NewRecorder()
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=2099-01-01&type=command&limit=50"
	r.ServeHTTP(w, authed(http.MethodGet, q, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                    `json:"count"`
		Events []models.ActuatorEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}

	f := logs.lastFilter
	if f.Type != models.EventCommand || f.Limit != 50 || !f.From.Equal(now) {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if want := time.Date(2099, 1, 1, 23, 59, 59, 999999999, time.UTC); !f.To.Equal(want) {
		t.Fatalf("date-only 'to' must cover the whole day, got %v", f.To)
	}
}

func TestLogsHandler_Errors(t *testing.T) {
	auth := &mockAuth{parseID: 1}

	t.Run("inverted range is 400", func(t *testing.T) {
		logs := &mockEventLog{}
		r := newTestRouter(&service.Service{Authorization: auth, EventLog: logs})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authed(http.MethodGet, "/api/v1/logs?from=2026-02-02&to=2026-01-01", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for inverted range, got %d", w.Code)
		}
		if logs.calls != 0 {
			t.Fatalf("service must not be called")
		}
	})

	t.Run("repo error is 500", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: auth, EventLog: &mockEventLog{err: errors.New("db down")}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authed(http.MethodGet, "/api/v1/logs", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
