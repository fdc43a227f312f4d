package aggregate

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/shelflife/pkg/timeutil"
	"tableflip.dev/shelflife/pkg/urgency"
)

const (
	// DefaultMaxIndicators caps the indicator dots drawn per date.
	DefaultMaxIndicators = 3
	// DefaultVirtualizationThreshold is the item count above which item
	// lists are windowed.
	DefaultVirtualizationThreshold = 100
	// DefaultDebounce is the quiet period before a scheduled pass runs.
	DefaultDebounce = 300 * time.Millisecond
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("aggregate: invalid configuration")

// Config carries every option of an aggregation pass. Values are taken
// literally; start from DefaultConfig to get the stock behavior.
type Config struct {
	// MaxIndicatorsPerDate bounds Bucket.Indicators. Zero draws none.
	MaxIndicatorsPerDate int
	// VirtualizationThreshold is read by the windowing layer.
	VirtualizationThreshold int
	// Debounce is read by the recompute scheduler.
	Debounce time.Duration
	// ReferenceDate is "now" for classification; zero means time.Now().
	ReferenceDate time.Time
	// SoonDays is the widest offset classified as soon.
	SoonDays int
	// Range restricts bucketing; the zero Range is unbounded.
	Range Range
	// Selected is the date the presentation layer has focused.
	Selected timeutil.DateKey
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxIndicatorsPerDate:    DefaultMaxIndicators,
		VirtualizationThreshold: DefaultVirtualizationThreshold,
		Debounce:                DefaultDebounce,
		SoonDays:                urgency.DefaultSoonDays,
	}
}

// Validate reports contract violations. Data problems in items are never
// configuration errors.
func (c Config) Validate() error {
	if c.MaxIndicatorsPerDate < 0 {
		return fmt.Errorf("%w: max indicators per date must not be negative, got %d", ErrInvalidConfig, c.MaxIndicatorsPerDate)
	}
	if c.VirtualizationThreshold < 0 {
		return fmt.Errorf("%w: virtualization threshold must not be negative, got %d", ErrInvalidConfig, c.VirtualizationThreshold)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative, got %s", ErrInvalidConfig, c.Debounce)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Range.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !c.Selected.IsZero() {
		if _, err := c.Selected.Time(); err != nil {
			return fmt.Errorf("%w: selected date: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Reference returns the reference date as a DateKey.
func (c Config) Reference() timeutil.DateKey {
	if c.ReferenceDate.IsZero() {
		return timeutil.KeyFor(time.Now())
	}
	return timeutil.KeyFor(c.ReferenceDate)
}

// Thresholds returns the urgency boundaries of the configuration.
func (c Config) Thresholds() urgency.Thresholds {
	return urgency.Thresholds{SoonDays: c.SoonDays}
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start timeutil.DateKey `json:"start,omitempty"`
	End   timeutil.DateKey `json:"end,omitempty"`
}

// MonthRange returns the calendar month containing k.
func MonthRange(k timeutil.DateKey) Range {
	first, last := timeutil.MonthBounds(k)
	return Range{Start: first, End: last}
}

// IsZero reports whether r is unbounded.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether k falls inside r. Open ends are unbounded.
func (r Range) Contains(k timeutil.DateKey) bool {
	if !r.Start.IsZero() && k.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && k.After(r.End) {
		return false
	}
	return true
}

// Validate checks that both ends parse and are ordered.
func (r Range) Validate() error {
	for _, k := range []timeutil.DateKey{r.Start, r.End} {
		if k.IsZero() {
			continue
		}
		if _, err := k.Time(); err != nil {
			return fmt.Errorf("range: %w", err)
		}
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return fmt.Errorf("range: end %s before start %s", r.End, r.Start)
	}
	return nil
}
