package tasks

import (
	"encoding/json"
	"time"

	"admitdesk/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminderSMS = "reminder:sms"
	SMSQueue            = "sms"
)

// NewReminderSMSTask builds the task for one reminder SMS. The task id is
// derived from the reminder so a reminder is queued at most once.
func NewReminderSMSTask(payload models.ReminderPayload, maxRetry int, timeout time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminderSMS, b)
	opts := []asynq.Option{
		asynq.Queue(SMSQueue),
		asynq.MaxRetry(maxRetry),
	}
	if payload.ReminderID != "" {
		opts = append(opts, asynq.TaskID("sms:"+payload.ReminderID))
	}
	if timeout > 0 {
		opts = append(opts, asynq.Timeout(timeout))
	}
	return task, opts, nil
}

// ParseReminderSMSTask decodes the payload of a reminder SMS task.
func ParseReminderSMSTask(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
