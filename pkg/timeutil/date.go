// Package timeutil holds the calendar-date helpers shared by the expiry
// pipeline and the command line.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutISO is the canonical DateKey layout.
	LayoutISO = "2006-01-02"
	// LayoutMonth names a calendar month on the command line.
	LayoutMonth = "2006-01"

	layoutLocal     = "2006-01-02T15:04:05"
	layoutLocalNano = "2006-01-02T15:04:05.999999999"

	secondsPerDay = 24 * 60 * 60
)

// ErrEmptyDate is returned when a date is required but the input is blank.
var ErrEmptyDate = errors.New("timeutil: empty date")

// DateKey is a calendar date rendered as YYYY-MM-DD in UTC. It is the bucket
// key for everything date-indexed; two values naming the same calendar day
// are always equal no matter which zone produced them.
type DateKey string

// KeyFor returns the calendar date of t in t's own location.
func KeyFor(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(LayoutISO))
}

// ParseDateKey normalizes a stored date. Plain dates, RFC3339 timestamps and
// offset-less timestamps are accepted. Timestamps carrying an offset are
// keyed by their UTC calendar date.
func ParseDateKey(raw string) (DateKey, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", ErrEmptyDate
	}
	if t, err := time.Parse(LayoutISO, v); err == nil {
		return KeyFor(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return KeyFor(t.UTC()), nil
	}
	for _, layout := range []string{layoutLocal, layoutLocalNano} {
		if t, err := time.Parse(layout, v); err == nil {
			return KeyFor(t), nil
		}
	}
	return "", fmt.Errorf("timeutil: unrecognized date %q", raw)
}

// MustKey parses the input and panics on error. Intended for tests.
func MustKey(raw string) DateKey {
	k, err := ParseDateKey(raw)
	if err != nil {
		panic(err)
	}
	return k
}

// IsZero reports whether the key is unset.
func (k DateKey) IsZero() bool { return k == "" }

func (k DateKey) String() string { return string(k) }

// Time returns UTC midnight of the key's day.
func (k DateKey) Time() (time.Time, error) {
	return time.Parse(LayoutISO, string(k))
}

// Day returns the day number since the Unix epoch.
func (k DateKey) Day() (int64, bool) {
	t, err := k.Time()
	if err != nil {
		return 0, false
	}
	return floorDiv(t.Unix(), secondsPerDay), true
}

// AddDays shifts the key by n calendar days. An invalid key is returned as is.
func (k DateKey) AddDays(n int) DateKey {
	t, err := k.Time()
	if err != nil {
		return k
	}
	return KeyFor(t.AddDate(0, 0, n))
}

// Before reports whether k names an earlier day than other.
func (k DateKey) Before(other DateKey) bool { return k < other }

// After reports whether k names a later day than other.
func (k DateKey) After(other DateKey) bool { return k > other }

// DaysBetween returns to-from in whole calendar days. Keys that do not parse
// count as zero distance.
func DaysBetween(from, to DateKey) int {
	a, ok := from.Day()
	if !ok {
		return 0
	}
	b, ok := to.Day()
	if !ok {
		return 0
	}
	return int(b - a)
}

// MonthBounds returns the first and last day of the month containing k.
func MonthBounds(k DateKey) (DateKey, DateKey) {
	t, err := k.Time()
	if err != nil {
		return "", ""
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return KeyFor(first), KeyFor(first.AddDate(0, 1, -1))
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first day of t's month.
func StartDay(t time.Time) time.Weekday {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// ParseMonth parses "2006-01" into the first day of that month.
func ParseMonth(raw string) (DateKey, error) {
	t, err := time.Parse(LayoutMonth, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("timeutil: invalid month %q: %w", raw, err)
	}
	return KeyFor(t), nil
}

// ResolveDate turns command line input into a DateKey relative to now. It
// accepts "today", "tomorrow", a span such as "3d" or "1w", or a date.
func ResolveDate(input string, now time.Time) (DateKey, error) {
	v := strings.ToLower(strings.TrimSpace(input))
	today := KeyFor(now)
	switch v {
	case "":
		return "", ErrEmptyDate
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	if k, err := ParseDateKey(v); err == nil {
		return k, nil
	}
	days, _, err := ParseSpan(v)
	if err != nil {
		return "", fmt.Errorf("timeutil: %q is neither a date nor a span: %w", input, err)
	}
	return today.AddDays(days), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
