// Package window keeps large inventories cheap to present: it hands out
// bounded views over a stably ordered item sequence and debounces
// recomputation while input is still changing.
package window

import (
	"fmt"
	"sort"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// DefaultPageSize is the number of items in a virtualized view.
const DefaultPageSize = 50

// Options configures a Provider.
type Options struct {
	// Threshold is the item count above which views are virtualized.
	Threshold int
	// PageSize is the view length used when a Range has no limit.
	PageSize int
}

// DefaultOptions returns the stock windowing options.
func DefaultOptions() Options {
	return Options{
		Threshold: aggregate.DefaultVirtualizationThreshold,
		PageSize:  DefaultPageSize,
	}
}

// OptionsFrom derives windowing options from an aggregation config.
func OptionsFrom(cfg aggregate.Config, pageSize int) Options {
	return Options{Threshold: cfg.VirtualizationThreshold, PageSize: pageSize}
}

// Range requests Limit items starting at Offset. A zero Limit means the
// provider's page size.
type Range struct {
	Offset int
	Limit  int
}

// View is a window over the caller's slice. Items aliases the input; it is
// a view, not a copy.
type View struct {
	Start       int
	End         int
	Total       int
	Virtualized bool
	// Stale is set when the requested range no longer existed in the source
	// and the view was recomputed against the current items.
	Stale bool
	Items []item.Item
}

// Len returns the number of items in the view.
func (v View) Len() int { return v.End - v.Start }

// Provider hands out views over item sequences.
type Provider struct {
	opts Options
}

// NewProvider validates opts and returns a Provider.
func NewProvider(opts Options) (*Provider, error) {
	if opts.Threshold < 0 {
		return nil, fmt.Errorf("%w: virtualization threshold must not be negative, got %d", aggregate.ErrInvalidConfig, opts.Threshold)
	}
	if opts.PageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", aggregate.ErrInvalidConfig, opts.PageSize)
	}
	return &Provider{opts: opts}, nil
}

// Options returns the provider's configuration.
func (p *Provider) Options() Options { return p.opts }

// Active reports whether a sequence of n items is virtualized.
func (p *Provider) Active(n int) bool {
	return n > p.opts.Threshold
}

// Window returns the view of all selected by r. Small sequences are returned
// whole. A range starting past the end of all is stale and is recomputed as
// the last page of the current items.
func (p *Provider) Window(all []item.Item, r Range) View {
	total := len(all)
	if !p.Active(total) {
		return View{Start: 0, End: total, Total: total, Items: all[:total:total]}
	}

	limit := r.Limit
	if limit <= 0 {
		limit = p.opts.PageSize
	}
	offset := r.Offset
	if offset < 0 {
		offset = 0
	}
	stale := false
	if offset >= total {
		stale = true
		offset = total - limit
		if offset < 0 {
			offset = 0
		}
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return View{
		Start:       offset,
		End:         end,
		Total:       total,
		Virtualized: true,
		Stale:       stale,
		Items:       all[offset:end:end],
	}
}

// Order returns a copy of items in presentation order: soonest expiry first,
// undated or malformed dates last, ties broken by id. The input is left
// untouched.
func Order(items []item.Item) []item.Item {
	type keyed struct {
		key   timeutil.DateKey
		dated bool
		it    item.Item
	}
	tmp := make([]keyed, len(items))
	for i, it := range items {
		k, err := timeutil.ParseDateKey(it.Expiry)
		tmp[i] = keyed{key: k, dated: err == nil, it: it}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		a, b := tmp[i], tmp[j]
		if a.dated != b.dated {
			return a.dated
		}
		if a.key != b.key {
			return a.key < b.key
		}
		return a.it.ID < b.it.ID
	})
	out := make([]item.Item, len(tmp))
	for i, k := range tmp {
		out[i] = k.it
	}
	return out
}
