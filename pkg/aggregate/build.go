package aggregate

import (
	"sort"

	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/timeutil"
	"tableflip.dev/shelflife/pkg/urgency"
)

type indexedEntry struct {
	pos   int
	entry Entry
}

// Build classifies and buckets items. It never fails: items with a missing or
// malformed expiry are counted as unscheduled (malformed ones also produce
// an Issue) and an empty input yields an empty, well formed Aggregate. cfg
// is assumed valid; see Config.Validate.
func Build(items []item.Item, cfg Config) *Aggregate {
	ref := cfg.Reference()
	th := cfg.Thresholds()

	agg := &Aggregate{
		Reference: ref,
		Range:     cfg.Range,
		Selected:  cfg.Selected,
		index:     make(map[timeutil.DateKey]int),
	}

	groups := make(map[timeutil.DateKey][]indexedEntry)
	var unscheduled []indexedEntry
	for pos, it := range items {
		cls, err := urgency.Classify(it, ref, th)
		if err != nil {
			agg.Issues = append(agg.Issues, Issue{
				ItemID:  it.ID,
				Raw:     it.Expiry,
				Message: err.Error(),
				Err:     err,
			})
		}
		e := indexedEntry{pos: pos, entry: Entry{Item: it, Urgency: cls}}
		if cls.Level == urgency.None {
			unscheduled = append(unscheduled, e)
			continue
		}
		if !cfg.Range.Contains(cls.Date) {
			agg.OutOfRange++
			continue
		}
		groups[cls.Date] = append(groups[cls.Date], e)
	}

	keys := make([]timeutil.DateKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	categories := make(map[string]int)
	agg.Buckets = make([]Bucket, 0, len(keys))
	for _, k := range keys {
		b := buildBucket(k, groups[k], ref, th, cfg.MaxIndicatorsPerDate)
		agg.index[k] = len(agg.Buckets)
		agg.Buckets = append(agg.Buckets, b)
		agg.Scheduled += b.Count
		agg.Levels.Merge(b.Levels)
		for _, c := range b.Categories {
			categories[c.Name] += c.Count
		}
	}
	agg.Categories = sortedCategories(categories)

	sortEntries(unscheduled)
	agg.UnscheduledEntries = make([]Entry, len(unscheduled))
	unscheduledCategories := make(map[string]int)
	for i, e := range unscheduled {
		agg.UnscheduledEntries[i] = e.entry
		unscheduledCategories[e.entry.Item.CategoryOrDefault()]++
		agg.UnscheduledLocations.Add(e.entry.Item.Location, 1)
	}
	agg.UnscheduledCategories = sortedCategories(unscheduledCategories)
	agg.Unscheduled = len(unscheduled)
	agg.Total = agg.Scheduled + agg.Unscheduled

	sort.SliceStable(agg.Issues, func(i, j int) bool {
		left, right := agg.Issues[i], agg.Issues[j]
		if left.ItemID != right.ItemID {
			return left.ItemID < right.ItemID
		}
		return left.Raw < right.Raw
	})
	return agg
}

// Classified pairs each item with its classification, keeping input order.
// Malformed dates classify as urgency.None.
func Classified(items []item.Item, cfg Config) []Entry {
	ref := cfg.Reference()
	th := cfg.Thresholds()
	out := make([]Entry, len(items))
	for i, it := range items {
		cls, _ := urgency.Classify(it, ref, th)
		out[i] = Entry{Item: it, Urgency: cls}
	}
	return out
}

func buildBucket(key timeutil.DateKey, group []indexedEntry, ref timeutil.DateKey, th urgency.Thresholds, maxIndicators int) Bucket {
	sortEntries(group)

	day := urgency.ClassifyDate(key, ref, th)
	b := Bucket{
		Key:       key,
		DaysUntil: day.DaysUntil,
		Entries:   make([]Entry, len(group)),
		Count:     len(group),
	}
	categories := make(map[string]int)
	for i, e := range group {
		b.Entries[i] = e.entry
		b.Levels.Add(e.entry.Urgency.Level, 1)
		b.Locations.Add(e.entry.Item.Location, 1)
		categories[e.entry.Item.CategoryOrDefault()]++
	}
	b.Categories = sortedCategories(categories)
	b.Indicators = indicatorsFor(b.Levels, maxIndicators)
	return b
}

// indicatorsFor picks the most urgent distinct levels present in counts.
// Levels beyond limit are dropped from the dots only; the counts stay exact.
func indicatorsFor(counts urgency.Counts, limit int) []Indicator {
	if limit <= 0 {
		return []Indicator{}
	}
	out := make([]Indicator, 0, limit)
	for _, l := range urgency.Levels() {
		n := counts.Of(l)
		if n == 0 {
			continue
		}
		out = append(out, Indicator{Level: l, Color: l.Color(), Count: n})
		if len(out) == limit {
			break
		}
	}
	return out
}

// sortEntries orders by item id, then name, then input position, so the
// result never depends on how the source ordered its records.
func sortEntries(entries []indexedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i].entry.Item, entries[j].entry.Item
		if left.ID != right.ID {
			return left.ID < right.ID
		}
		if left.Name != right.Name {
			return left.Name < right.Name
		}
		return entries[i].pos < entries[j].pos
	})
}

func sortedCategories(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
