package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"mcu_control/internal/actuator"
	"mcu_control/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	msgHello        = "Hello from mcu!"
	msgTemperature  = "chip temperature: %.2f°C"
	msgTempFailed   = "chip temperature unavailable: %v"
	msgLedFading    = "The LED is fading in / out ..."
	msgLedOff       = "The LED is off."
	msgInvalidCmd   = "Invalid cmd!"
	msgLedGone      = "The LED is unavailable: the fade task has stopped."
	msgUnknownError = "The LED command failed: %v"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
    <head>
        <meta charset="utf-8">
        <title>mcu web server</title>
    </head>
    <body>
        {{.}}
    </body>
</html>
`))

// reply renders "{unix seconds} ~ {msg}" as text, or wrapped in a minimal
// page for clients that ask for HTML.
func (h *Handler) reply(c *gin.Context, msg string) {
	line := fmt.Sprintf("%d ~ %s", h.now().Unix(), msg)
	if c.NegotiateFormat(gin.MIMEPlain, gin.MIMEHTML) == gin.MIMEHTML {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/html; charset=utf-8")
		_ = pageTemplate.Execute(c.Writer, line)
		return
	}
	c.String(http.StatusOK, line)
}

// requestLogger logs every dispatcher request.
func (h *Handler) requestLogger(c *gin.Context) {
	if h.log != nil {
		h.log.Infow("request", "path", c.Request.URL.Path, "query", c.Request.URL.RawQuery)
	}
	c.Next()
}

// @Summary      Greeting
// @Tags         device
// @Produce      plain
// @Success      200  {string}  string  "1700000000 ~ Hello from mcu!"
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	h.reply(c, msgHello)
}

// @Summary      Chip temperature
// @Description  One serialized sensor read. A driver error is rendered in the body, status stays 200.
// @Tags         device
// @Produce      plain
// @Success      200  {string}  string  "1700000000 ~ chip temperature: 41.25°C"
// @Router       /temperature [get]
func (h *Handler) temperature(c *gin.Context) {
	v, err := h.services.Thermometer.Read()
	if err != nil {
		h.reply(c, fmt.Sprintf(msgTempFailed, err))
		return
	}
	h.reply(c, fmt.Sprintf(msgTemperature, v))
}

// @Summary      Switch the LED fade
// @Description  Accepts /led?on, /led?off or /led?cmd=on|off. The reply confirms acceptance, not completion. Always 200.
// @Tags         device
// @Produce      plain
// @Param        cmd  query  string  false  "on or off"  Enums(on,off)
// @Success      200  {string}  string  "1700000000 ~ The LED is fading in / out ..."
// @Router       /led [get]
func (h *Handler) led(c *gin.Context) {
	ack, err := h.services.Actuator.Command(ledQuery(c))
	switch {
	case errors.Is(err, models.ErrInvalidCommand):
		h.reply(c, msgInvalidCmd)
	case errors.Is(err, actuator.ErrChannelClosed):
		h.reply(c, msgLedGone)
	case err != nil:
		if h.log != nil {
			h.log.Errorw("led_command_failed", "err", err)
		}
		h.reply(c, fmt.Sprintf(msgUnknownError, err))
	case ack.Command == models.CmdTurnOn:
		h.reply(c, msgLedFading)
	default:
		h.reply(c, msgLedOff)
	}
}

// ledQuery returns the cmd parameter if present, else the whole raw query.
func ledQuery(c *gin.Context) string {
	if v, ok := c.GetQuery("cmd"); ok {
		return v
	}
	raw := c.Request.URL.RawQuery
	if s, err := url.QueryUnescape(raw); err == nil {
		return s
	}
	return raw
}
