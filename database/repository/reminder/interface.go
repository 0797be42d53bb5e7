package reminderRepo

import (
	"context"
	"errors"
	"time"

	"admitdesk/models"
)

// ErrReminderNotFound is returned when no reminder matches the given id.
var ErrReminderNotFound = errors.New("reminder not found")

// ReminderRepository defines methods for reminder data access.
type ReminderRepository interface {
	// Create inserts a new reminder, assigning an id when empty.
	Create(ctx context.Context, reminder *models.Reminder) error
	// GetByID retrieves a reminder by its id.
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	// List returns reminders matching filter ordered by time.
	List(ctx context.Context, filter models.ReminderFilter) ([]models.Reminder, error)
	// Delete removes a reminder by its id.
	Delete(ctx context.Context, id string) error
	// DeleteByTarget removes every reminder attached to a lead or business record.
	DeleteByTarget(ctx context.Context, ownerType, targetID string) (int64, error)
	// FindDue returns pending reminders with time <= now (and >= notBefore when set).
	FindDue(ctx context.Context, now, notBefore string, limit int64) ([]models.Reminder, error)
	// MarkSent flips notified to true only if it is still false and reports
	// whether this call performed the flip.
	MarkSent(ctx context.Context, id string, sentAt time.Time) (bool, error)
}
