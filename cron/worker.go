package cron

import (
	"context"
	"fmt"

	"admitdesk/services/notification"
	"admitdesk/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewSMSWorker builds the asynq server and mux that drain the SMS queue.
func NewSMSWorker(redisOpts asynq.RedisClientOpt, sender notification.SMSSender, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.SMSQueue: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminderSMS, HandleReminderSMSTask(sender, logger))
	return srv, mux
}

// HandleReminderSMSTask sends the SMS carried by a reminder:sms task.
func HandleReminderSMSTask(sender notification.SMSSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderSMSTask(task)
		if err != nil {
			logger.Error("Invalid reminder SMS payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		err = sender.Send(ctx, notification.SMS{To: p.Phone, Body: p.Body, Reference: p.ReminderID})
		if err != nil {
			logger.Error("Queued SMS delivery failed",
				zap.String("reminderId", p.ReminderID),
				zap.String("phone", p.Phone),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("Queued SMS delivered", zap.String("reminderId", p.ReminderID))
		return nil
	}
}
