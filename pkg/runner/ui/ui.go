// Package ui runs the interactive expiry calendar.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/app"
	"tableflip.dev/shelflife/pkg/legend"
	"tableflip.dev/shelflife/pkg/pipeline"
	"tableflip.dev/shelflife/pkg/store"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// UI wires the store, the aggregation pipeline and the calendar program.
type UI struct {
	Service  *app.Service
	Config   aggregate.Config
	PageSize int
	Logger   *zap.Logger
}

// Do runs the program until the user quits or ctx is done.
func (u *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := u.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var program *tea.Program
	sink := pipeline.SinkFunc(func(_ context.Context, agg *aggregate.Aggregate, counts legend.Counts) error {
		if program != nil {
			program.Send(snapshotMsg{agg: agg, counts: counts})
		}
		return nil
	})

	live := u.Config.ReferenceDate.IsZero()
	today := timeutil.KeyFor(time.Now())
	if !live {
		today = timeutil.KeyFor(u.Config.ReferenceDate)
	}
	cfg := u.Config
	cfg.Selected = today
	cfg.Range = aggregate.MonthRange(today)

	pipe, err := pipeline.New(u.Service, sink, pipeline.Options{
		Config:   cfg,
		PageSize: u.PageSize,
		Logger:   log.Named("pipeline"),
	})
	if err != nil {
		return err
	}
	defer pipe.Stop()

	// Seed the pipeline so focus changes have items to re-run.
	items, err := u.Service.FetchItems(ctx, pipe.Hint())
	if err != nil {
		return err
	}
	if _, err := pipe.Process(ctx, items); err != nil {
		log.Warn("initial pass", zap.Error(err))
	}

	events, err := u.Service.Watch(ctx)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	program = tea.NewProgram(New(ctx, pipe, today), tea.WithAltScreen())
	go func() {
		if err := pipe.Run(ctx, store.Changes(events)); err != nil && ctx.Err() == nil {
			log.Error("pipeline stopped", zap.Error(err))
		}
	}()

	if live {
		go timeutil.OnRollover(ctx, time.Now, 0, func(day timeutil.DateKey) {
			program.Send(dayMsg{today: day})
		})
	}

	_, err = program.Run()
	return err
}
