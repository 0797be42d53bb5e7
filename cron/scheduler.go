package cron

import (
	"context"
	"fmt"
	"time"

	"admitdesk/models"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Ticker runs one dispatch pass.
type Ticker interface {
	Tick(ctx context.Context) (models.DispatchReport, error)
}

// zapCronLogger routes cron's own logging through zap.
type zapCronLogger struct {
	s *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewDispatchScheduler schedules ticker on spec (e.g. "@every 1m"). Each run
// gets tickTimeout; a run still in progress when the next one is due causes
// that next run to be skipped.
func NewDispatchScheduler(spec string, tickTimeout time.Duration, ticker Ticker, logger *zap.Logger) (*robfig.Cron, error) {
	cl := zapCronLogger{s: logger.Sugar()}
	c := robfig.New(
		robfig.WithLogger(cl),
		robfig.WithChain(robfig.Recover(cl), robfig.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		if tickTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, tickTimeout)
			defer cancel()
		}
		if _, err := ticker.Tick(ctx); err != nil {
			logger.Error("Reminder dispatch tick failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid dispatch schedule %q: %w", spec, err)
	}
	return c, nil
}
