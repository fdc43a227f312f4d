package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/legend"
	"tableflip.dev/shelflife/pkg/pipeline"
	"tableflip.dev/shelflife/pkg/store"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// Service provides high-level operations over the stored inventory.
// It wraps persistence and aggregation so UIs and CLIs can share logic.
type Service struct {
	Persistence store.Persistence
	// Now is the clock used for relative dates; nil means time.Now.
	Now func() time.Time
}

var errNoPersistence = errors.New("app: no persistence configured")

// AddRequest describes an item to create. Expires accepts anything
// timeutil.ResolveDate does; empty means no expiry.
type AddRequest struct {
	Name     string
	Quantity float64
	Unit     string
	Location string
	Category string
	Expires  string
}

// Snapshot is one aggregation pass and its legend.
type Snapshot struct {
	Aggregate *aggregate.Aggregate `json:"aggregate"`
	Counts    legend.Counts        `json:"legend"`
}

var _ pipeline.Source = (*Service)(nil)

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Add creates and stores a new item.
func (s *Service) Add(ctx context.Context, req AddRequest) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, errNoPersistence
	}
	loc, err := item.ParseLocation(req.Location)
	if err != nil {
		return item.Item{}, err
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	it := item.New(req.Name, qty, req.Unit, loc)
	it.Category = strings.TrimSpace(req.Category)
	if strings.TrimSpace(req.Expires) != "" {
		key, err := timeutil.ResolveDate(req.Expires, s.now())
		if err != nil {
			return item.Item{}, fmt.Errorf("app: expires: %w", err)
		}
		it.Expiry = key.String()
	}
	if err := s.Persistence.Store(&it); err != nil {
		return item.Item{}, err
	}
	return it, nil
}

// Remove deletes the item with id (or an unambiguous id prefix).
func (s *Service) Remove(ctx context.Context, id string) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, errNoPersistence
	}
	return s.Persistence.Delete(ctx, id)
}

// Move stores the item with id at a new location.
func (s *Service) Move(ctx context.Context, id, location string) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, errNoPersistence
	}
	loc, err := item.ParseLocation(location)
	if err != nil {
		return item.Item{}, err
	}
	it, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return item.Item{}, err
	}
	if it.Location == loc {
		return it, nil
	}
	it.Location = loc
	if err := s.Persistence.Store(&it); err != nil {
		return item.Item{}, err
	}
	return it, nil
}

// SetExpiry changes the expiry of the item with id. An empty expires clears
// it.
func (s *Service) SetExpiry(ctx context.Context, id, expires string) (item.Item, error) {
	if s.Persistence == nil {
		return item.Item{}, errNoPersistence
	}
	it, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return item.Item{}, err
	}
	it.Expiry = ""
	if strings.TrimSpace(expires) != "" {
		key, err := timeutil.ResolveDate(expires, s.now())
		if err != nil {
			return item.Item{}, fmt.Errorf("app: expires: %w", err)
		}
		it.Expiry = key.String()
	}
	if err := s.Persistence.Store(&it); err != nil {
		return item.Item{}, err
	}
	return it, nil
}

// Items lists every stored item in creation order.
func (s *Service) Items(ctx context.Context) ([]item.Item, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Persistence.List(ctx), nil
}

// FetchItems returns the whole inventory. The hint is not used to filter:
// out-of-range and undated items still count toward the legend.
func (s *Service) FetchItems(ctx context.Context, _ pipeline.RangeHint) ([]item.Item, error) {
	return s.Items(ctx)
}

// Snapshot aggregates the current inventory under cfg.
func (s *Service) Snapshot(ctx context.Context, cfg aggregate.Config) (Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return Snapshot{}, err
	}
	items, err := s.Items(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if cfg.ReferenceDate.IsZero() {
		cfg.ReferenceDate = s.now()
	}
	agg := aggregate.Build(items, cfg)
	return Snapshot{Aggregate: agg, Counts: legend.Summarize(agg)}, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
