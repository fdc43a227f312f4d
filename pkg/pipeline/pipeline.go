// Package pipeline wires the item source through debouncing, aggregation,
// summarizing and the render gate to a presentation sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/item"
	"tableflip.dev/shelflife/pkg/legend"
	"tableflip.dev/shelflife/pkg/render"
	"tableflip.dev/shelflife/pkg/timeutil"
	"tableflip.dev/shelflife/pkg/window"
)

// RangeHint tells a Source which dates the caller is about to look at. Either
// bound may be zero; sources are free to return more than asked for.
type RangeHint struct {
	Start timeutil.DateKey
	End   timeutil.DateKey
}

// Source supplies the current item collection.
type Source interface {
	FetchItems(ctx context.Context, hint RangeHint) ([]item.Item, error)
}

// Sink receives aggregates that changed since the last presentation.
type Sink interface {
	Present(ctx context.Context, agg *aggregate.Aggregate, counts legend.Counts) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, agg *aggregate.Aggregate, counts legend.Counts) error

// Present calls f.
func (f SinkFunc) Present(ctx context.Context, agg *aggregate.Aggregate, counts legend.Counts) error {
	return f(ctx, agg, counts)
}

// Options configures a Pipeline.
type Options struct {
	Config   aggregate.Config
	PageSize int
	Logger   *zap.Logger
	// Registerer receives the pipeline metrics. Nil keeps them unregistered.
	Registerer prometheus.Registerer
}

// Result is the outcome of one pass.
type Result struct {
	Aggregate *aggregate.Aggregate
	Counts    legend.Counts
	Presented bool
}

// Pipeline runs aggregation passes. Passes never overlap.
type Pipeline struct {
	source   Source
	sink     Sink
	provider *window.Provider
	gate     render.Gate
	log      *zap.Logger
	metrics  *Metrics

	debouncer *window.Debouncer
	ctx       context.Context
	cancel    context.CancelFunc

	mu      sync.Mutex
	cfg     aggregate.Config
	ordered []item.Item
	last    Result
	lastErr error
}

// New validates opts and returns a pipeline reading from source and
// presenting to sink.
func New(source Source, sink Sink, opts Options) (*Pipeline, error) {
	if source == nil {
		return nil, errors.New("pipeline: source is required")
	}
	if sink == nil {
		return nil, errors.New("pipeline: sink is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = window.DefaultPageSize
	}
	provider, err := window.NewProvider(window.OptionsFrom(opts.Config, pageSize))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		source:   source,
		sink:     sink,
		provider: provider,
		log:      log,
		metrics:  NewMetrics(opts.Registerer),
		ctx:      ctx,
		cancel:   cancel,
		cfg:      opts.Config,
	}
	p.debouncer = window.NewDebouncer(opts.Config.Debounce, func(items []item.Item) {
		if _, err := p.Process(p.ctx, items); err != nil {
			p.log.Error("aggregation pass failed", zap.Error(err))
		}
	})
	return p, nil
}

// Metrics returns the pipeline's collectors.
func (p *Pipeline) Metrics() *Metrics { return p.metrics }

// Config returns the configuration used by the next pass.
func (p *Pipeline) Config() aggregate.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Hint returns the date range the pipeline currently cares about.
func (p *Pipeline) Hint() RangeHint {
	cfg := p.Config()
	return RangeHint{Start: cfg.Range.Start, End: cfg.Range.End}
}

// Schedule queues items for a debounced pass. Only the latest input scheduled
// within a quiet period is aggregated.
func (p *Pipeline) Schedule(items []item.Item) {
	p.debouncer.Schedule(items)
}

// Refresh fetches the current items from the source and schedules them.
func (p *Pipeline) Refresh(ctx context.Context) error {
	items, err := p.source.FetchItems(ctx, p.Hint())
	if err != nil {
		return fmt.Errorf("pipeline: fetch items: %w", err)
	}
	p.Schedule(items)
	return nil
}

// Run refreshes once, then again for every value received on changes, until
// ctx is done or changes is closed. Pending input is flushed on return.
func (p *Pipeline) Run(ctx context.Context, changes <-chan struct{}) error {
	if err := p.Refresh(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			p.debouncer.Stop()
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				p.Flush()
				return nil
			}
			if err := p.Refresh(ctx); err != nil {
				p.log.Warn("refresh failed", zap.Error(err))
			}
		}
	}
}

// Flush runs any pending input immediately and reports whether one ran.
func (p *Pipeline) Flush() bool {
	return p.debouncer.Flush()
}

// Stop drops pending input and cancels in-flight sink calls.
func (p *Pipeline) Stop() {
	p.debouncer.Stop()
	p.cancel()
}

// Process runs one pass over items synchronously, bypassing the debouncer.
func (p *Pipeline) Process(ctx context.Context, items []item.Item) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pass(ctx, items)
}

// Select changes the selected date and re-runs the last input with it.
func (p *Pipeline) Select(ctx context.Context, key timeutil.DateKey) (Result, error) {
	return p.reconfigure(ctx, func(cfg *aggregate.Config) {
		cfg.Selected = key
	})
}

// SetRange changes the bucketing range and re-runs the last input with it.
func (p *Pipeline) SetRange(ctx context.Context, r aggregate.Range) (Result, error) {
	return p.reconfigure(ctx, func(cfg *aggregate.Config) {
		cfg.Range = r
	})
}

// Focus changes the selected date and the bucketing range together, running
// a single pass.
func (p *Pipeline) Focus(ctx context.Context, key timeutil.DateKey, r aggregate.Range) (Result, error) {
	return p.reconfigure(ctx, func(cfg *aggregate.Config) {
		cfg.Selected = key
		cfg.Range = r
	})
}

func (p *Pipeline) reconfigure(ctx context.Context, mutate func(*aggregate.Config)) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.cfg
	mutate(&next)
	if err := next.Validate(); err != nil {
		return p.last, fmt.Errorf("pipeline: %w", err)
	}
	p.cfg = next
	return p.pass(ctx, p.ordered)
}

// Last returns the result of the most recent pass and its error.
func (p *Pipeline) Last() (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.lastErr
}

// Window returns a view over the last aggregated items in presentation order.
func (p *Pipeline) Window(r window.Range) window.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.provider.Window(p.ordered, r)
}

// Pager returns a pager over the pipeline's windowing options.
func (p *Pipeline) Pager() *window.Pager {
	return p.provider.Pager()
}

// pass must be called with p.mu held.
func (p *Pipeline) pass(ctx context.Context, items []item.Item) (Result, error) {
	start := time.Now()
	cfg := p.cfg

	log := p.log.With(zap.Int("items", len(items)))
	log.Debug("aggregation pass started",
		zap.Bool("virtualized", p.provider.Active(len(items))))

	p.ordered = window.Order(items)
	agg := aggregate.Build(items, cfg)
	counts := legend.Summarize(agg)

	for _, issue := range agg.Issues {
		log.Warn("malformed expiry date",
			zap.String("item", issue.ItemID),
			zap.String("raw", issue.Raw),
			zap.Error(issue.Err))
	}
	p.metrics.RecordMalformed(len(agg.Issues))

	res := Result{Aggregate: agg, Counts: counts}
	if !p.gate.Offer(agg) {
		log.Debug("render skipped, nothing changed")
		p.metrics.RecordSkip()
		p.metrics.RecordPass("skipped", time.Since(start).Seconds())
		p.last, p.lastErr = res, nil
		return res, nil
	}

	if err := p.sink.Present(ctx, agg, counts); err != nil {
		// Let the next pass present again.
		p.gate.Reset()
		log.Error("presenting aggregate failed", zap.Error(err))
		p.metrics.RecordPass("failed", time.Since(start).Seconds())
		p.last, p.lastErr = res, err
		return res, fmt.Errorf("pipeline: present: %w", err)
	}
	res.Presented = true
	p.metrics.RecordPass("presented", time.Since(start).Seconds())
	log.Debug("aggregation pass finished",
		zap.Int("buckets", len(agg.Buckets)),
		zap.Int("unscheduled", agg.Unscheduled),
		zap.Duration("took", time.Since(start)))
	p.last, p.lastErr = res, nil
	return res, nil
}
