package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	employeeRepo "admitdesk/database/repository/employee"
	reminderRepo "admitdesk/database/repository/reminder"
	"admitdesk/middleware"
	"admitdesk/models"
	"admitdesk/services/realtime"
	"admitdesk/services/reminders"
	"admitdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubReminderService struct {
	created  []models.CreateReminderRequest
	byID     map[string]models.Reminder
	err      error
	lastList models.ReminderFilter
}

func (s *stubReminderService) CreateReminder(_ context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, req)
	return &models.Reminder{ID: "R1", Time: req.Time, Message: req.Message, Type: req.Type,
		TargetID: req.TargetID, EmployeeID: req.EmployeeID}, nil
}

func (s *stubReminderService) GetReminder(_ context.Context, id string) (*models.Reminder, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, reminderRepo.ErrReminderNotFound
	}
	return &r, nil
}

func (s *stubReminderService) ListReminders(_ context.Context, f models.ReminderFilter) ([]models.Reminder, error) {
	s.lastList = f
	return nil, s.err
}

func (s *stubReminderService) DeleteReminder(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return reminderRepo.ErrReminderNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubReminderService) DeleteTargetReminders(_ context.Context, ownerType, targetID string) (int64, error) {
	if ownerType != models.ReminderTypeLead && ownerType != models.ReminderTypeBusiness {
		return 0, reminders.ErrInvalidReminderType
	}
	return 3, nil
}

type stubEmployeeService struct {
	emp       models.Employee
	createErr error
	updated   models.UpdateContactRequest
}

func (s *stubEmployeeService) CreateEmployee(_ context.Context, req models.CreateEmployeeRequest) (*models.Employee, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Employee{ID: "E9", Name: req.Name, Email: req.Email, Contact: models.EmployeeContact{Phone: req.Phone}}, nil
}

func (s *stubEmployeeService) GetEmployee(_ context.Context, id string) (*models.Employee, error) {
	if id != s.emp.ID {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	e := s.emp
	return &e, nil
}

func (s *stubEmployeeService) UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Employee, error) {
	s.updated = req
	return s.GetEmployee(ctx, id)
}

func (s *stubEmployeeService) GetContact(_ context.Context, id string) (*models.Contact, error) {
	return &models.Contact{EmployeeID: id, Phone: s.emp.Contact.Phone}, nil
}

type stubTicker struct {
	report models.DispatchReport
	err    error
	calls  int
}

func (s *stubTicker) Tick(context.Context) (models.DispatchReport, error) {
	s.calls++
	return s.report, s.err
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func reminderRouter(svc *stubReminderService) *gin.Engine {
	h := NewReminderHandler(svc)
	r := gin.New()
	r.POST("/api/reminders", h.CreateReminderHandler)
	r.GET("/api/reminders", h.ListRemindersHandler)
	r.GET("/api/reminders/:id", h.GetReminderHandler)
	r.DELETE("/api/reminders/:id", h.DeleteReminderHandler)
	r.DELETE("/api/reminders/target/:type/:targetId", h.DeleteTargetRemindersHandler)
	return r
}

func TestCreateReminderHandler(t *testing.T) {
	svc := &stubReminderService{}
	r := reminderRouter(svc)

	w := perform(r, http.MethodPost, "/api/reminders",
		`{"type":"lead","targetId":"L1","employeeId":"E1","message":"Call back","time":"2024-01-01T09:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var got models.Reminder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "R1", got.ID)
	assert.Equal(t, "E1", got.EmployeeID)
	require.Len(t, svc.created, 1)

	w = perform(r, http.MethodPost, "/api/reminders",
		`{"type":"invoice","targetId":"L1","employeeId":"E1","message":"x","time":"2024-01-01T09:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, svc.created, 1)
}

func TestCreateReminderHandlerMapsBadTime(t *testing.T) {
	svc := &stubReminderService{err: fmt.Errorf("%w: %q", reminders.ErrInvalidReminderTime, "tomorrow")}
	w := perform(reminderRouter(svc), http.MethodPost, "/api/reminders",
		`{"type":"lead","targetId":"L1","employeeId":"E1","message":"Call back","time":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "tomorrow")
}

func TestReminderReadAndDelete(t *testing.T) {
	svc := &stubReminderService{byID: map[string]models.Reminder{
		"R1": {ID: "R1", Time: "2024-01-01T09:00", EmployeeID: "E1"},
	}}
	r := reminderRouter(svc)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/reminders/R1", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/reminders/R2", "").Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/api/reminders/R1", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/api/reminders/R1", "").Code)
}

func TestListRemindersHandlerBindsFilter(t *testing.T) {
	svc := &stubReminderService{}
	w := perform(reminderRouter(svc), http.MethodGet, "/api/reminders?employeeId=E1&notified=false&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reminders":[]}`, w.Body.String())

	assert.Equal(t, "E1", svc.lastList.EmployeeID)
	require.NotNil(t, svc.lastList.Notified)
	assert.False(t, *svc.lastList.Notified)
	assert.EqualValues(t, 5, svc.lastList.Limit)

	svc.err = errors.New("mongo down")
	w = perform(reminderRouter(svc), http.MethodGet, "/api/reminders", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteTargetRemindersHandler(t *testing.T) {
	r := reminderRouter(&stubReminderService{})

	w := perform(r, http.MethodDelete, "/api/reminders/target/business/B7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":3}`, w.Body.String())

	w = perform(r, http.MethodDelete, "/api/reminders/target/invoice/B7", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandlers(t *testing.T) {
	svc := &stubEmployeeService{emp: models.Employee{ID: "E1", Name: "Asha", Contact: models.EmployeeContact{Phone: "+919800000001"}}}
	h := NewEmployeeHandler(svc)
	r := gin.New()
	r.POST("/api/employees", h.CreateEmployeeHandler)
	r.GET("/api/employees/:id", h.GetEmployeeHandler)
	r.PATCH("/api/employees/:id/contact", h.UpdateContactHandler)

	w := perform(r, http.MethodPost, "/api/employees", `{"name":"Ravi","email":"ravi@example.com","phone":"+919800000002"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, http.MethodPost, "/api/employees", `{"name":"Ravi","email":"ravi@example.com","phone":"98000"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.createErr = employeeRepo.ErrEmailTaken
	w = perform(r, http.MethodPost, "/api/employees", `{"name":"Ravi","email":"ravi@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/employees/E1", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/api/employees/E2", "").Code)

	w = perform(r, http.MethodPatch, "/api/employees/E1/contact", `{"phone":"+919800000003"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updated.Phone)
	assert.Equal(t, "+919800000003", *svc.updated.Phone)
	assert.Nil(t, svc.updated.FCMToken)
}

func TestDispatchHandler(t *testing.T) {
	ticker := &stubTicker{report: models.DispatchReport{Now: "2024-01-01T09:00", Selected: 2, Emitted: 2, Marked: 2}}
	h := NewAdminHandler(ticker, nil)
	r := gin.New()
	r.POST("/dispatch", h.DispatchHandler)
	r.GET("/health", h.HealthHandler)

	w := perform(r, http.MethodPost, "/dispatch", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report models.DispatchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Marked)
	assert.Equal(t, 1, ticker.calls)

	ticker.err = errors.New("due query failed")
	assert.Equal(t, http.StatusInternalServerError, perform(r, http.MethodPost, "/dispatch", "").Code)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/health", "").Code)
}

func TestHealthHandlerReportsDegraded(t *testing.T) {
	monitor := &utils.HealthMonitor{
		Mongo: utils.PingFunc(func(context.Context) error { return nil }),
		Redis: map[string]utils.Pinger{
			"cache": utils.PingFunc(func(context.Context) error { return errors.New("refused") }),
		},
	}
	h := NewAdminHandler(&stubTicker{}, monitor)
	r := gin.New()
	r.GET("/health", h.HealthHandler)

	w := perform(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
}

func TestStreamHandlerDeliversRoomEvents(t *testing.T) {
	hub := realtime.NewHub(4)
	h := NewRealtimeHandler(hub, time.Hour)
	r := gin.New()
	r.GET("/stream", func(c *gin.Context) {
		c.Set(middleware.ContextEmployeeID, "E1")
		c.Next()
	}, h.StreamHandler)

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewReader(resp.Body)
	readEvent := func() string {
		for {
			line, err := lines.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "event:") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			}
		}
	}

	assert.Equal(t, "ready", readEvent())
	require.Equal(t, 1, hub.RoomSize("E1"))

	delivered := hub.Emit("E1", models.RealtimeEvent{
		Name:    models.EventReminderFired,
		Payload: models.Reminder{ID: "R1", Message: "Call back"},
	})
	assert.Equal(t, 1, delivered)
	assert.Equal(t, models.EventReminderFired, readEvent())

	data, err := lines.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, data, `"Call back"`)

	resp.Body.Close()
	assert.Eventually(t, func() bool { return hub.RoomSize("E1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStreamHandlerRequiresIdentity(t *testing.T) {
	h := NewRealtimeHandler(realtime.NewHub(1), 0)
	r := gin.New()
	r.GET("/stream", h.StreamHandler)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/stream", "").Code)
}
