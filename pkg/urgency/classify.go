package urgency

import (
	"errors"
	"fmt"

	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// DefaultSoonDays is the widest day offset still classified as Soon.
const DefaultSoonDays = 3

// ErrMalformedDate matches every *MalformedDateError.
var ErrMalformedDate = errors.New("urgency: malformed expiry date")

// MalformedDateError reports an expiry date that could not be parsed. It is
// returned alongside a None classification; it never aborts a pass.
type MalformedDateError struct {
	ItemID string
	Raw    string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("urgency: item %s: malformed expiry date %q: %v", e.ItemID, e.Raw, e.Err)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

func (e *MalformedDateError) Is(target error) bool { return target == ErrMalformedDate }

// Thresholds configures the classification boundaries.
type Thresholds struct {
	SoonDays int
}

// DefaultThresholds returns the stock boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{SoonDays: DefaultSoonDays}
}

// Validate rejects boundaries that cannot classify anything sensibly.
func (t Thresholds) Validate() error {
	if t.SoonDays < 0 {
		return fmt.Errorf("urgency: soon days must not be negative, got %d", t.SoonDays)
	}
	return nil
}

// Classification is the urgency of one item against a reference date.
type Classification struct {
	Level     Level            `json:"level"`
	DaysUntil int              `json:"daysUntil"`
	Date      timeutil.DateKey `json:"date,omitempty"`
}

// Color returns the color token of the classification's level.
func (c Classification) Color() Color { return c.Level.Color() }

// Description returns the description of the classification's level.
func (c Classification) Description() string { return c.Level.Description() }

// Label renders the day offset for people, e.g. "Expired 2 days ago".
func (c Classification) Label() string {
	switch c.Level {
	case None:
		return "No expiry date"
	case Expired:
		return "Expired " + plural(-c.DaysUntil) + " ago"
	case Today:
		return "Expires today"
	}
	if c.DaysUntil == 1 {
		return "Expires tomorrow"
	}
	return "Expires in " + plural(c.DaysUntil)
}

func plural(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// ForDays maps a signed day offset onto a level.
func ForDays(days int, th Thresholds) Level {
	switch {
	case days < 0:
		return Expired
	case days == 0:
		return Today
	case days <= th.SoonDays:
		return Soon
	default:
		return Safe
	}
}

// ClassifyDate classifies an already normalized expiry date.
func ClassifyDate(expiry, ref timeutil.DateKey, th Thresholds) Classification {
	days := timeutil.DaysBetween(ref, expiry)
	return Classification{
		Level:     ForDays(days, th),
		DaysUntil: days,
		Date:      expiry,
	}
}

// Classify returns the urgency of it on the reference date. Items without an
// expiry classify as None. A malformed expiry also classifies as None and is
// reported through a *MalformedDateError.
func Classify(it item.Item, ref timeutil.DateKey, th Thresholds) (Classification, error) {
	if !it.HasExpiry() {
		return Classification{Level: None}, nil
	}
	key, err := timeutil.ParseDateKey(it.Expiry)
	if err != nil {
		return Classification{Level: None}, &MalformedDateError{ItemID: it.ID, Raw: it.Expiry, Err: err}
	}
	return ClassifyDate(key, ref, th), nil
}
