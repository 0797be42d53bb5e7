package handlers

import (
	"errors"
	"net/http"

	reminderRepo "admitdesk/database/repository/reminder"
	"admitdesk/models"
	"admitdesk/services/reminders"
	"admitdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler serves the reminder lifecycle endpoints.
type ReminderHandler struct {
	Service reminders.ReminderService
}

func NewReminderHandler(svc reminders.ReminderService) *ReminderHandler {
	return &ReminderHandler{Service: svc}
}

// CreateReminderHandler attaches a new pending reminder to a lead or business.
func (h *ReminderHandler) CreateReminderHandler(c *gin.Context) {
	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reminder request", err.Error())
		return
	}

	reminder, err := h.Service.CreateReminder(c.Request.Context(), req)
	if err != nil {
		reminderError(c, err, "Failed to create reminder")
		return
	}
	zap.L().Info("Reminder created",
		zap.String("reminderId", reminder.ID),
		zap.String("employeeId", reminder.EmployeeID),
		zap.String("time", reminder.Time))
	c.JSON(http.StatusCreated, reminder)
}

func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	var filter models.ReminderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	list, err := h.Service.ListReminders(c.Request.Context(), filter)
	if err != nil {
		reminderError(c, err, "Failed to list reminders")
		return
	}
	if list == nil {
		list = []models.Reminder{}
	}
	c.JSON(http.StatusOK, gin.H{"reminders": list})
}

func (h *ReminderHandler) GetReminderHandler(c *gin.Context) {
	reminder, err := h.Service.GetReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		reminderError(c, err, "Failed to fetch reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	if err := h.Service.DeleteReminder(c.Request.Context(), c.Param("id")); err != nil {
		reminderError(c, err, "Failed to delete reminder")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTargetRemindersHandler removes every reminder of a lead or business
// record. Called when the owner itself is deleted.
func (h *ReminderHandler) DeleteTargetRemindersHandler(c *gin.Context) {
	n, err := h.Service.DeleteTargetReminders(c.Request.Context(), c.Param("type"), c.Param("targetId"))
	if err != nil {
		reminderError(c, err, "Failed to delete reminders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func reminderError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, reminderRepo.ErrReminderNotFound):
		utils.JSONError(c, http.StatusNotFound, "Reminder not found", err.Error())
	case errors.Is(err, reminders.ErrInvalidReminderType),
		errors.Is(err, reminders.ErrMissingField),
		errors.Is(err, reminders.ErrInvalidReminderTime):
		utils.JSONError(c, http.StatusBadRequest, msg, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, msg, err.Error())
	}
}
