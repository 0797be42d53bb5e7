package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Reminder endpoints
	CreateReminderHandler        gin.HandlerFunc
	ListRemindersHandler         gin.HandlerFunc
	GetReminderHandler           gin.HandlerFunc
	DeleteReminderHandler        gin.HandlerFunc
	DeleteTargetRemindersHandler gin.HandlerFunc

	// Employee endpoints
	CreateEmployeeHandler gin.HandlerFunc
	GetEmployeeHandler    gin.HandlerFunc
	UpdateContactHandler  gin.HandlerFunc

	// Realtime
	StreamHandler gin.HandlerFunc

	// Operator endpoints
	DispatchHandler gin.HandlerFunc
	HealthHandler   gin.HandlerFunc

	AdminToken        string
	MaxRequestsPerMin int
}
