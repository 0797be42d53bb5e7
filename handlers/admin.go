package handlers

import (
	"net/http"

	"admitdesk/cron"
	"admitdesk/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates operator-level operations.
type AdminHandler struct {
	Dispatcher cron.Ticker
	Health     *utils.HealthMonitor
}

func NewAdminHandler(dispatcher cron.Ticker, health *utils.HealthMonitor) *AdminHandler {
	return &AdminHandler{Dispatcher: dispatcher, Health: health}
}

// DispatchHandler runs one dispatch pass immediately and returns its report.
func (ah *AdminHandler) DispatchHandler(c *gin.Context) {
	report, err := ah.Dispatcher.Tick(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Dispatch failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// HealthHandler reports the latest dependency health snapshot.
func (ah *AdminHandler) HealthHandler(c *gin.Context) {
	if ah.Health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	status := ah.Health.Status()
	if status.CheckedAt.IsZero() {
		status = ah.Health.Check(c.Request.Context())
	}
	code, label := http.StatusOK, "ok"
	if !status.Healthy() {
		code, label = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(code, gin.H{"status": label, "dependencies": status})
}
