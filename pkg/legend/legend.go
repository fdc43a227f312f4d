// Package legend rolls an aggregate up into the counts shown next to the
// calendar.
package legend

import (
	"sort"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/urgency"
)

// WeekDays is the span, starting today, counted as "this week".
const WeekDays = 7

// Counts is the legend summary of one aggregate.
type Counts struct {
	Total       int                       `json:"total"`
	Scheduled   int                       `json:"scheduled"`
	Unscheduled int                       `json:"unscheduled"`
	Expired     int                       `json:"expired"`
	Today       int                       `json:"today"`
	Soon        int                       `json:"soon"`
	Safe        int                       `json:"safe"`
	ThisWeek    int                       `json:"thisWeek"`
	PerCategory []aggregate.CategoryCount `json:"perCategory"`
	PerLocation item.LocationCounts       `json:"perLocation"`
}

// Balanced reports whether the dated counts add up to the scheduled items.
func (c Counts) Balanced() bool {
	return c.Expired+c.Today+c.Soon+c.Safe == c.Total-c.Unscheduled
}

// Of returns the count for one dated level; None yields Unscheduled.
func (c Counts) Of(l urgency.Level) int {
	switch l {
	case urgency.Expired:
		return c.Expired
	case urgency.Today:
		return c.Today
	case urgency.Soon:
		return c.Soon
	case urgency.Safe:
		return c.Safe
	default:
		return c.Unscheduled
	}
}

// Summarize reduces agg to legend counts. It only reads the tallies carried
// on each bucket, so its cost grows with the number of dates, not items.
func Summarize(agg *aggregate.Aggregate) Counts {
	c := Counts{PerCategory: []aggregate.CategoryCount{}}
	if agg == nil {
		return c
	}

	categories := make(map[string]int)
	for _, b := range agg.Buckets {
		c.Scheduled += b.Count
		c.Expired += b.Levels.Expired
		c.Today += b.Levels.Today
		c.Soon += b.Levels.Soon
		c.Safe += b.Levels.Safe
		if b.DaysUntil >= 0 && b.DaysUntil < WeekDays {
			c.ThisWeek += b.Count
		}
		c.PerLocation.Merge(b.Locations)
		for _, cat := range b.Categories {
			categories[cat.Name] += cat.Count
		}
	}

	c.Unscheduled = agg.Unscheduled
	c.Total = c.Scheduled + c.Unscheduled
	c.PerLocation.Merge(agg.UnscheduledLocations)
	for _, cat := range agg.UnscheduledCategories {
		categories[cat.Name] += cat.Count
	}

	for name, n := range categories {
		c.PerCategory = append(c.PerCategory, aggregate.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(c.PerCategory, func(i, j int) bool {
		return c.PerCategory[i].Name < c.PerCategory[j].Name
	})
	return c
}
