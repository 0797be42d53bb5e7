package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admitdesk/models"
	"admitdesk/services/tasks"

	"github.com/hibiken/asynq"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedSMSSender hands messages to the asynq SMS queue instead of calling
// the provider inline; the SMS worker performs the actual send.
type QueuedSMSSender struct {
	Client   taskEnqueuer
	MaxRetry int
	Timeout  time.Duration
}

func (q *QueuedSMSSender) Send(ctx context.Context, msg SMS) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}
	task, opts, err := tasks.NewReminderSMSTask(models.ReminderPayload{
		ReminderID: msg.Reference,
		Phone:      msg.To,
		Body:       msg.Body,
	}, q.MaxRetry, q.Timeout)
	if err != nil {
		return fmt.Errorf("failed to build sms task: %w", err)
	}
	if _, err := q.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			// already queued for this reminder
			return nil
		}
		return fmt.Errorf("failed to enqueue sms task: %w", err)
	}
	return nil
}
