package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	employeeRepo "admitdesk/database/repository/employee"
	reminderRepo "admitdesk/database/repository/reminder"
	"admitdesk/models"
	"admitdesk/services/notification"
	"admitdesk/services/realtime"

	"go.uber.org/zap"
)

// ContactResolver looks up how to reach an employee.
type ContactResolver interface {
	GetContact(ctx context.Context, employeeID string) (*models.Contact, error)
}

// Dispatcher delivers due reminders. One Tick is one pass over the due set:
// emit to the assignee's room, mark sent, then SMS and push.
//
// Mark-sent is conditional on notified=false and happens only after the
// realtime emission succeeded; SMS and push go out only for the caller that
// won the flip, so concurrent dispatchers never both text the same reminder.
type Dispatcher struct {
	Reminders reminderRepo.ReminderRepository
	Contacts  ContactResolver
	Channel   realtime.Publisher
	SMS       notification.SMSSender
	// Push is optional.
	Push notification.PushSender

	Clock Clock
	// MaxLag ignores reminders older than now-MaxLag. Zero means no bound.
	MaxLag    time.Duration
	BatchSize int64
	Logger    *zap.Logger
}

// Tick runs one dispatch pass. Only a failed due query is returned as an
// error; per-reminder failures are logged and counted in the report.
func (d *Dispatcher) Tick(ctx context.Context) (models.DispatchReport, error) {
	started := time.Now()
	now := d.Clock.now()
	report := models.DispatchReport{Now: d.Clock.Format(now)}

	notBefore := ""
	if d.MaxLag > 0 {
		notBefore = d.Clock.Format(now.Add(-d.MaxLag))
	}

	due, err := d.Reminders.FindDue(ctx, report.Now, notBefore, d.BatchSize)
	if err != nil {
		d.logger().Error("Dispatch tick aborted: due reminder query failed",
			zap.String("now", report.Now), zap.Error(err))
		return report, fmt.Errorf("fetch due reminders: %w", err)
	}
	report.Selected = len(due)

	for i := range due {
		if err := ctx.Err(); err != nil {
			d.logger().Warn("Dispatch tick interrupted, remaining reminders stay pending",
				zap.Int("remaining", len(due)-i), zap.Error(err))
			break
		}
		d.dispatch(ctx, due[i], &report)
	}

	report.Duration = time.Since(started)
	if report.Selected > 0 {
		d.logger().Info("Dispatch tick finished",
			zap.String("now", report.Now),
			zap.Int("selected", report.Selected),
			zap.Int("emitted", report.Emitted),
			zap.Int("marked", report.Marked),
			zap.Int("smsSent", report.SMSSent),
			zap.Int("smsFailed", report.SMSFailed),
			zap.Int("pushed", report.Pushed),
			zap.Int("skipped", report.Skipped),
			zap.Duration("took", report.Duration),
		)
	}
	return report, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, r models.Reminder, report *models.DispatchReport) {
	log := d.logger().With(zap.String("reminderId", r.ID), zap.String("employeeId", r.EmployeeID))

	if r.EmployeeID == "" {
		// no room and no phone to deliver to; retire it so it stops matching
		log.Warn("Reminder has no assignee, marking sent without delivery")
		if _, err := d.markSent(ctx, r.ID); err != nil {
			log.Error("Failed to mark reminder sent", zap.Error(err))
		}
		report.Skipped++
		return
	}

	event := models.RealtimeEvent{Name: models.EventReminderFired, Payload: r}
	if err := d.Channel.Publish(ctx, r.EmployeeID, event); err != nil {
		log.Error("Failed to emit reminder event, leaving it pending", zap.Error(err))
		report.Skipped++
		return
	}
	report.Emitted++

	won, err := d.markSent(ctx, r.ID)
	if err != nil {
		log.Error("Failed to mark reminder sent, skipping SMS", zap.Error(err))
		report.Skipped++
		return
	}
	if !won {
		log.Info("Reminder already sent by another dispatcher, skipping SMS")
		report.Skipped++
		return
	}
	report.Marked++

	contact, err := d.Contacts.GetContact(ctx, r.EmployeeID)
	switch {
	case errors.Is(err, employeeRepo.ErrEmployeeNotFound):
		log.Warn("Employee not found, SMS skipped")
		return
	case err != nil:
		log.Error("Employee lookup failed, SMS skipped", zap.Error(err))
		return
	}

	if contact.Phone == "" {
		log.Warn("Employee has no phone number, SMS skipped")
	} else if err := d.SMS.Send(ctx, notification.SMS{To: contact.Phone, Body: r.Message, Reference: r.ID}); err != nil {
		log.Error("SMS delivery failed", zap.String("phone", contact.Phone), zap.Error(err))
		report.SMSFailed++
	} else {
		report.SMSSent++
	}

	if d.Push != nil && contact.FCMToken != "" {
		data := map[string]string{
			"type":       models.EventReminderFired,
			"reminderId": r.ID,
			"targetType": r.Type,
			"targetId":   r.TargetID,
		}
		if err := d.Push.Send(ctx, contact.FCMToken, "Reminder", r.Message, data); err != nil {
			log.Warn("Push delivery failed", zap.Error(err))
		} else {
			report.Pushed++
		}
	}
}

func (d *Dispatcher) markSent(ctx context.Context, id string) (bool, error) {
	return d.Reminders.MarkSent(ctx, id, d.Clock.now())
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.L()
}
