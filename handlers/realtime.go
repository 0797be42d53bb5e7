package handlers

import (
	"net/http"
	"time"

	"admitdesk/middleware"
	"admitdesk/services/realtime"
	"admitdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHeartbeat = 25 * time.Second

// RealtimeHandler streams room events to browsers over Server-Sent Events.
type RealtimeHandler struct {
	Hub       *realtime.Hub
	Heartbeat time.Duration
}

func NewRealtimeHandler(hub *realtime.Hub, heartbeat time.Duration) *RealtimeHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &RealtimeHandler{Hub: hub, Heartbeat: heartbeat}
}

// StreamHandler joins the caller's employee room and forwards its events
// until the client disconnects.
func (h *RealtimeHandler) StreamHandler(c *gin.Context) {
	employeeID := c.GetString(middleware.ContextEmployeeID)
	if employeeID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Missing employee identity", "")
		return
	}

	session := h.Hub.Join(employeeID)
	defer session.Close()
	zap.L().Debug("Realtime session opened", zap.String("room", employeeID), zap.String("session", session.ID))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()

	c.SSEvent("ready", gin.H{"session": session.ID, "room": employeeID})
	c.Writer.Flush()

	events := session.Events()
	ctx := c.Request.Context()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case ev, ok := <-events:
			if !ok {
				break loop
			}
			c.SSEvent(ev.Name, ev.Payload)
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
		}
		c.Writer.Flush()
	}
	zap.L().Debug("Realtime session closed", zap.String("room", employeeID), zap.String("session", session.ID))
}
