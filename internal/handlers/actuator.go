package handlers

import (
	"errors"
	"net/http"

	"mcu_control/internal/actuator"
	"mcu_control/internal/models"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// CommandRequest is the body of POST /api/v1/actuator/command.
type CommandRequest struct {
	// on or off
	Command string `json:"command" binding:"required" example:"on"`
}

// CommandResponse reports acceptance; the fade itself runs in the background.
type CommandResponse struct {
	Command string                `json:"command" example:"on"`
	Queued  bool                  `json:"queued"`
	Status  models.ActuatorStatus `json:"status"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Actuator status
// @Description  Last known fade state; may lag the fade task by one step.
// @Tags         actuator
// @Produce      json
// @Success      200  {object}  models.ActuatorStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/actuator/status [get]
// @Security     BearerAuth
func (h *Handler) getActuatorStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Actuator.Status())
}

// @Summary      Submit an actuator command
// @Tags         actuator
// @Accept       json
// @Produce      json
// @Param        body  body      CommandRequest  true  "Command payload"
// @Success      202   {object}  CommandResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/actuator/command [post]
// @Security     BearerAuth
func (h *Handler) postActuatorCommand(c *gin.Context) {
	var req CommandRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ack, err := h.services.Actuator.Command(req.Command)
	switch {
	case errors.Is(err, models.ErrInvalidCommand):
		c.JSON(http.StatusBadRequest, gin.H{"error": "command must be \"on\" or \"off\""})
		return
	case errors.Is(err, actuator.ErrChannelClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "fade task has stopped"})
		return
	case err != nil:
		if h.log != nil {
			h.log.Errorw("actuator_command_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "command failed"})
		return
	}

	c.JSON(http.StatusAccepted, CommandResponse{
		Command: ack.Command.String(),
		Queued:  ack.Queued,
		Status:  h.services.Actuator.Status(),
	})
}

// @Summary      Device snapshot
// @Description  Actuator status plus one fresh temperature read. Read failures are reported in the body.
// @Tags         actuator
// @Produce      json
// @Success      200  {object}  models.DeviceStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/status [get]
// @Security     BearerAuth
func (h *Handler) getDeviceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Snapshot(c.Request.Context()))
}
