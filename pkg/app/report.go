package app

import (
	"context"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// ReportSection groups the report entries stored at one location.
type ReportSection struct {
	Location item.Location
	Entries  []aggregate.Entry
}

// ReportResult lists what expires in a window of days.
type ReportResult struct {
	Since timeutil.DateKey
	Until timeutil.DateKey
	// Expired counts items already past their date; they are not listed.
	Expired  int
	Sections []ReportSection
	Total    int
}

// Report returns items expiring within days of the reference date in cfg,
// grouped by location. Entries keep expiry order.
func (s *Service) Report(ctx context.Context, cfg aggregate.Config, days int) (ReportResult, error) {
	if days < 0 {
		days = 0
	}
	if cfg.ReferenceDate.IsZero() {
		cfg.ReferenceDate = s.now()
	}
	ref := cfg.Reference()
	cfg.Range = aggregate.Range{}
	snap, err := s.Snapshot(ctx, cfg)
	if err != nil {
		return ReportResult{}, err
	}

	until := ref.AddDays(days)
	res := ReportResult{Since: ref, Until: until, Expired: snap.Counts.Expired}
	grouped := make(map[item.Location][]aggregate.Entry)
	for _, b := range snap.Aggregate.Buckets {
		if b.Key.Before(ref) || b.Key.After(until) {
			continue
		}
		for _, e := range b.Entries {
			grouped[e.Item.Location] = append(grouped[e.Item.Location], e)
			res.Total++
		}
	}
	for _, loc := range item.AllLocations() {
		if entries := grouped[loc]; len(entries) > 0 {
			res.Sections = append(res.Sections, ReportSection{Location: loc, Entries: entries})
		}
	}
	return res, nil
}
