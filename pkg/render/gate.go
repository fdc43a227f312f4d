// Package render decides whether a freshly built aggregate is worth pushing
// to the presentation layer.
package render

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"tableflip.dev/shelflife/pkg/aggregate"
)

// Fingerprint is the cheap identity of an aggregate. Two aggregates with
// equal fingerprints render the same calendar cells, legend badges and
// selected date. Edits that keep every bucket's level, location and category
// counts intact (a rename, say) collide; the gate accepts that.
type Fingerprint struct {
	Selected    string
	Reference   string
	Total       int
	Unscheduled int
	Buckets     int
	Hash        uint64
}

// FingerprintOf digests agg in O(buckets x categories).
func FingerprintOf(agg *aggregate.Aggregate) Fingerprint {
	if agg == nil {
		return Fingerprint{}
	}
	d := xxhash.New()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = d.Write(buf[:])
	}
	writeCategories := func(cats []aggregate.CategoryCount) {
		writeInt(len(cats))
		for _, c := range cats {
			_, _ = d.WriteString(c.Name)
			_, _ = d.Write([]byte{0})
			writeInt(c.Count)
		}
	}
	_, _ = d.WriteString(string(agg.Range.Start) + ".." + string(agg.Range.End))
	writeInt(agg.OutOfRange)
	writeInt(agg.UnscheduledLocations.Fridge)
	writeInt(agg.UnscheduledLocations.Shelf)
	writeCategories(agg.UnscheduledCategories)
	for _, b := range agg.Buckets {
		_, _ = d.WriteString(string(b.Key))
		writeInt(b.Count)
		writeInt(b.Levels.Expired)
		writeInt(b.Levels.Today)
		writeInt(b.Levels.Soon)
		writeInt(b.Levels.Safe)
		writeInt(b.Locations.Fridge)
		writeInt(b.Locations.Shelf)
		writeCategories(b.Categories)
		writeInt(len(b.Indicators))
		for _, ind := range b.Indicators {
			writeInt(int(ind.Level))
		}
	}
	return Fingerprint{
		Selected:    string(agg.Selected),
		Reference:   string(agg.Reference),
		Total:       agg.Total,
		Unscheduled: agg.Unscheduled,
		Buckets:     len(agg.Buckets),
		Hash:        d.Sum64(),
	}
}

// ShouldUpdate reports whether next differs from prev enough to re-render.
func ShouldUpdate(prev, next *aggregate.Aggregate) bool {
	if next == nil {
		return false
	}
	if prev == nil {
		return true
	}
	return FingerprintOf(prev) != FingerprintOf(next)
}

// Gate remembers the last aggregate handed to the presentation layer.
type Gate struct {
	last atomic.Pointer[aggregate.Aggregate]
}

// Offer replaces the last emitted aggregate with next when ShouldUpdate
// agrees, and reports whether it did.
func (g *Gate) Offer(next *aggregate.Aggregate) bool {
	for {
		prev := g.last.Load()
		if !ShouldUpdate(prev, next) {
			return false
		}
		if g.last.CompareAndSwap(prev, next) {
			return true
		}
	}
}

// Last returns the last emitted aggregate, or nil.
func (g *Gate) Last() *aggregate.Aggregate {
	return g.last.Load()
}

// Reset forgets the last emitted aggregate so the next offer always passes.
func (g *Gate) Reset() {
	g.last.Store(nil)
}
