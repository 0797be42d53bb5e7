package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	reminderRepo "admitdesk/database/repository/reminder"
	"admitdesk/models"
)

var (
	ErrInvalidReminderType = errors.New("reminder type must be lead or business")
	ErrMissingField        = errors.New("missing required field")
)

// ReminderService covers the reminder lifecycle outside the dispatcher:
// attaching reminders to leads and business leads and removing them.
type ReminderService interface {
	CreateReminder(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error)
	GetReminder(ctx context.Context, id string) (*models.Reminder, error)
	ListReminders(ctx context.Context, filter models.ReminderFilter) ([]models.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
	DeleteTargetReminders(ctx context.Context, ownerType, targetID string) (int64, error)
}

type DefaultReminderService struct {
	Repo  reminderRepo.ReminderRepository
	Clock Clock
}

// CreateReminder stores a pending reminder with its time normalized to the
// minute-precision regional format the dispatcher compares against.
func (s *DefaultReminderService) CreateReminder(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
	if err := validateOwnerType(req.Type); err != nil {
		return nil, err
	}
	for name, v := range map[string]string{
		"targetId":   req.TargetID,
		"employeeId": req.EmployeeID,
		"message":    req.Message,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	at, err := s.Clock.Normalize(req.Time)
	if err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		Time:       at,
		Message:    req.Message,
		Type:       req.Type,
		TargetID:   req.TargetID,
		EmployeeID: req.EmployeeID,
	}
	if err := s.Repo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *DefaultReminderService) GetReminder(ctx context.Context, id string) (*models.Reminder, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultReminderService) ListReminders(ctx context.Context, filter models.ReminderFilter) ([]models.Reminder, error) {
	if filter.Type != "" {
		if err := validateOwnerType(filter.Type); err != nil {
			return nil, err
		}
	}
	return s.Repo.List(ctx, filter)
}

func (s *DefaultReminderService) DeleteReminder(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// DeleteTargetReminders removes every reminder of a lead or business record,
// used when the owner itself is deleted.
func (s *DefaultReminderService) DeleteTargetReminders(ctx context.Context, ownerType, targetID string) (int64, error) {
	if err := validateOwnerType(ownerType); err != nil {
		return 0, err
	}
	if targetID == "" {
		return 0, fmt.Errorf("%w: targetId", ErrMissingField)
	}
	return s.Repo.DeleteByTarget(ctx, ownerType, targetID)
}

func validateOwnerType(t string) error {
	switch t {
	case models.ReminderTypeLead, models.ReminderTypeBusiness:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidReminderType, t)
}
