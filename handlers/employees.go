package handlers

import (
	"errors"
	"net/http"

	employeeRepo "admitdesk/database/repository/employee"
	"admitdesk/models"
	"admitdesk/services/employee"
	"admitdesk/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler serves employee records and their contact details.
type EmployeeHandler struct {
	Service employee.EmployeeService
}

func NewEmployeeHandler(svc employee.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: svc}
}

func (h *EmployeeHandler) CreateEmployeeHandler(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid employee request", err.Error())
		return
	}
	emp, err := h.Service.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		employeeError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) GetEmployeeHandler(c *gin.Context) {
	emp, err := h.Service.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		employeeError(c, err, "Failed to fetch employee")
		return
	}
	c.JSON(http.StatusOK, emp)
}

// UpdateContactHandler changes the phone number and/or push token used for
// reminder delivery.
func (h *EmployeeHandler) UpdateContactHandler(c *gin.Context) {
	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid contact update", err.Error())
		return
	}
	emp, err := h.Service.UpdateContact(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		employeeError(c, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, emp)
}

func employeeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, employeeRepo.ErrEmployeeNotFound):
		utils.JSONError(c, http.StatusNotFound, "Employee not found", err.Error())
	case errors.Is(err, employeeRepo.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, msg, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, msg, err.Error())
	}
}
