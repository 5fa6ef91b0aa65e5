// Package dateutils provides the date operations used to stamp order files.
package dateutils

import (
	"fmt"
	"time"
)

// DateLayoutISO is the layout of every date written to an order file.
const DateLayoutISO = "2006-01-02"

// Clock returns the current time. Components take a Clock so runs can be
// pinned to a date in tests.
type Clock func() time.Time

// SystemClock is the Clock backed by time.Now.
func SystemClock() time.Time {
	return time.Now()
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ParseISODate parses a YYYY-MM-DD date in UTC.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, err)
	}
	return t, nil
}

// TruncateToDay drops the time of day, keeping the date in date's location.
func TruncateToDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// AddDays adds calendar days. Month and year boundaries roll over, and a
// daylight saving change does not shift the resulting date.
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}
