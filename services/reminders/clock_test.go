package reminders

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ist = 5*time.Hour + 30*time.Minute

func fixedClock(offset time.Duration, at time.Time) Clock {
	return Clock{Offset: offset, Now: func() time.Time { return at }}
}

func TestCurrentShiftsAndTruncates(t *testing.T) {
	at := time.Date(2024, 1, 1, 3, 30, 59, 999, time.UTC)
	c := fixedClock(ist, at)

	assert.Equal(t, "2024-01-01T09:00", c.Current())
}

func TestCurrentCrossesDateLine(t *testing.T) {
	at := time.Date(2024, 12, 31, 20, 45, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-01T02:15", fixedClock(ist, at).Current())
	assert.Equal(t, "2024-12-31T16:45", fixedClock(-4*time.Hour, at).Current())
}

func TestNormalize(t *testing.T) {
	c := Clock{Offset: ist}

	cases := map[string]string{
		"2024-01-01T09:00":              "2024-01-01T09:00",
		"2024-01-01T09:00:42":           "2024-01-01T09:00",
		"2024-01-01T09:00:42.123":       "2024-01-01T09:00",
		"2024-01-01 09:00":              "2024-01-01T09:00",
		"  2024-01-01T09:00  ":          "2024-01-01T09:00",
		"2024-01-01T03:30:00Z":          "2024-01-01T09:00",
		"2024-01-01T03:30:15.5Z":        "2024-01-01T09:00",
		"2024-01-01T09:00:00+05:30":     "2024-01-01T09:00",
		"2023-12-31T22:30:00-01:00":     "2024-01-01T05:00",
	}
	for in, want := range cases {
		got, err := c.Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	c := Clock{Offset: ist}
	for _, in := range []string{"", "tomorrow", "2024-13-01T09:00", "09:00"} {
		_, err := c.Normalize(in)
		assert.True(t, errors.Is(err, ErrInvalidReminderTime), in)
	}
}

func TestFormattedTimesOrderLexicographically(t *testing.T) {
	c := Clock{Offset: ist}
	base := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	prev := c.Format(base)
	for i := 1; i < 200; i++ {
		next := c.Format(base.Add(time.Duration(i) * 7 * time.Minute))
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestZoneName(t *testing.T) {
	assert.Equal(t, "UTC+05:30", zoneName(ist))
	assert.Equal(t, "UTC-04:00", zoneName(-4*time.Hour))
	assert.Equal(t, "UTC+00:00", zoneName(0))
}
