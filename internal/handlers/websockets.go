package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mcu_control/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
	statePoll        = 50 * time.Millisecond
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The diagnostic page may be served from another origin (a laptop on the
// same LAN), so origins are not checked.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live actuator status
// @Description  Upgrades to a websocket and pushes {"type":"status","data":ActuatorStatus} every interval (default 1s, max 10s) and whenever the state changes.
// @Tags         actuator
// @Param        interval     query  string  false  "e.g. 250ms"
// @Param        interval_ms  query  int     false  "milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	poll := time.NewTicker(statePoll)
	defer func() {
		ticker.Stop()
		ping.Stop()
		poll.Stop()
	}()

	last, err := h.sendStatus(conn)
	if err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-poll.C:
			if h.services.Actuator.Status().State == last.State {
				continue
			}
			if last, err = h.sendStatus(conn); err != nil {
				h.wsWriteFailed(err)
				return
			}
		case <-ticker.C:
			if last, err = h.sendStatus(conn); err != nil {
				h.wsWriteFailed(err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendStatus writes the current actuator status and returns what it sent.
func (h *Handler) sendStatus(conn *websocket.Conn) (models.ActuatorStatus, error) {
	st := h.services.Actuator.Status()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return st, conn.WriteJSON(wsEnvelope{Type: "status", Data: st})
}

func (h *Handler) wsWriteFailed(err error) {
	if h.log != nil {
		h.log.Infow("ws_write_failed", "err", err)
	}
}
