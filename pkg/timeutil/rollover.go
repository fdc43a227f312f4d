package timeutil

import (
	"context"
	"time"
)

// RolloverCheck is how often OnRollover looks at the clock.
const RolloverCheck = time.Minute

// OnRollover calls fn with the new date every time the calendar date of now()
// changes, checking every interval, until ctx is done. A nil now means
// time.Now; a non-positive interval means RolloverCheck.
func OnRollover(ctx context.Context, now func() time.Time, every time.Duration, fn func(DateKey)) {
	if now == nil {
		now = time.Now
	}
	if every <= 0 {
		every = RolloverCheck
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	last := KeyFor(now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if today := KeyFor(now()); today != last {
				last = today
				fn(today)
			}
		}
	}
}
