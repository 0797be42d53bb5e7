package reminders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"admitdesk/models"
)

// ErrInvalidReminderTime is returned for time strings that match none of the accepted layouts.
var ErrInvalidReminderTime = errors.New("invalid reminder time")

// layouts accepted for local wall-clock input, interpreted in the clock's zone.
var localLayouts = []string{
	models.ReminderTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Clock renders instants as reminder time strings in a fixed regional offset.
type Clock struct {
	Offset time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Location is the fixed zone the clock formats in.
func (c Clock) Location() *time.Location {
	return time.FixedZone(zoneName(c.Offset), int(c.Offset/time.Second))
}

// Format renders t at minute precision in the clock's zone.
func (c Clock) Format(t time.Time) string {
	return t.In(c.Location()).Format(models.ReminderTimeLayout)
}

// Current is the reminder time string for this minute.
func (c Clock) Current() string {
	return c.Format(c.now())
}

// Normalize converts user supplied input into the stored minute-precision
// string. Zone-qualified input (RFC3339) is shifted into the clock's zone,
// anything else is taken as local wall-clock time. Seconds are dropped.
func (c Clock) Normalize(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidReminderTime)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return c.Format(t), nil
		}
	}
	loc := c.Location()
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return c.Format(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReminderTime, input)
}

func zoneName(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("UTC%s%02d:%02d", sign, h, m)
}
