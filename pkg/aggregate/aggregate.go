// Package aggregate groups inventory items by expiry date and produces the
// immutable per-date structure the calendar renders from.
package aggregate

import (
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/timeutil"
	"tableflip.dev/shelflife/pkg/urgency"
)

// Entry pairs an item with its classification.
type Entry struct {
	Item    item.Item              `json:"item"`
	Urgency urgency.Classification `json:"urgency"`
}

// Indicator is one calendar dot: a level, its color token and how many items
// of the date carry it.
type Indicator struct {
	Level urgency.Level `json:"level"`
	Color urgency.Color `json:"color"`
	Count int           `json:"count"`
}

// CategoryCount is a per-category tally. Slices of it are sorted by name.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Bucket holds every item expiring on one calendar day.
type Bucket struct {
	Key       timeutil.DateKey `json:"key"`
	DaysUntil int              `json:"daysUntil"`
	Entries   []Entry          `json:"entries"`
	// Indicators holds at most MaxIndicatorsPerDate distinct levels, most
	// urgent first. Count is never truncated.
	Indicators []Indicator         `json:"indicators"`
	Count      int                 `json:"count"`
	Levels     urgency.Counts      `json:"levels"`
	Categories []CategoryCount     `json:"categories"`
	Locations  item.LocationCounts `json:"locations"`
}

// Issue records a per-item data problem found during a pass.
type Issue struct {
	ItemID  string `json:"itemId"`
	Raw     string `json:"raw"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Aggregate is the result of one pass. It is never mutated after Build
// returns it.
type Aggregate struct {
	Reference timeutil.DateKey `json:"reference"`
	Range     Range            `json:"range"`
	Selected  timeutil.DateKey `json:"selected,omitempty"`

	Buckets []Bucket `json:"buckets"`

	// Total counts the items considered: scheduled in range plus
	// unscheduled.
	Total       int `json:"total"`
	Scheduled   int `json:"scheduled"`
	Unscheduled int `json:"unscheduled"`
	OutOfRange  int `json:"outOfRange"`

	Levels     urgency.Counts  `json:"levels"`
	Categories []CategoryCount `json:"categories"`

	UnscheduledEntries    []Entry             `json:"unscheduledEntries"`
	UnscheduledCategories []CategoryCount     `json:"unscheduledCategories"`
	UnscheduledLocations  item.LocationCounts `json:"unscheduledLocations"`

	Issues []Issue `json:"issues,omitempty"`

	index map[timeutil.DateKey]int
}

// Bucket returns the bucket for key.
func (a *Aggregate) Bucket(key timeutil.DateKey) (Bucket, bool) {
	if a == nil {
		return Bucket{}, false
	}
	i, ok := a.index[key]
	if !ok {
		return Bucket{}, false
	}
	return a.Buckets[i], true
}

// ItemsOn returns the entries expiring on key, in bucket order.
func (a *Aggregate) ItemsOn(key timeutil.DateKey) []Entry {
	b, ok := a.Bucket(key)
	if !ok {
		return nil
	}
	return b.Entries
}

// Keys returns the bucket keys in ascending order.
func (a *Aggregate) Keys() []timeutil.DateKey {
	if a == nil {
		return nil
	}
	keys := make([]timeutil.DateKey, len(a.Buckets))
	for i, b := range a.Buckets {
		keys[i] = b.Key
	}
	return keys
}

// Empty reports whether the pass considered no items at all.
func (a *Aggregate) Empty() bool {
	return a == nil || a.Total == 0
}

// Mark is the calendar cell view of a bucket.
type Mark struct {
	Key        timeutil.DateKey
	Indicators []Indicator
	Count      int
	Selected   bool
	Today      bool
}

// Marks returns one mark per bucket, plus an empty mark for the selected
// date when it has no items so the calendar can still highlight it.
func (a *Aggregate) Marks() []Mark {
	if a == nil {
		return nil
	}
	marks := make([]Mark, 0, len(a.Buckets)+1)
	selectedSeen := a.Selected.IsZero()
	for _, b := range a.Buckets {
		selected := b.Key == a.Selected
		selectedSeen = selectedSeen || selected
		marks = append(marks, Mark{
			Key:        b.Key,
			Indicators: b.Indicators,
			Count:      b.Count,
			Selected:   selected,
			Today:      b.Key == a.Reference,
		})
	}
	if !selectedSeen {
		marks = append(marks, Mark{
			Key:      a.Selected,
			Selected: true,
			Today:    a.Selected == a.Reference,
		})
	}
	return marks
}
