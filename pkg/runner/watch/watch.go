// Package watch reprints the expiry calendar whenever the store changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/app"
	"tableflip.dev/shelflife/pkg/legend"
	"tableflip.dev/shelflife/pkg/pipeline"
	"tableflip.dev/shelflife/pkg/printers"
	"tableflip.dev/shelflife/pkg/store"
	"tableflip.dev/shelflife/pkg/timeutil"
)

// Watch runs the aggregation pipeline against the store and prints every
// aggregate the render gate lets through.
type Watch struct {
	Service  *app.Service
	Config   aggregate.Config
	PageSize int
	Logger   *zap.Logger
	Printer  *printers.PrettyPrint
	// MetricsAddr, when set, serves the pipeline metrics on /metrics.
	MetricsAddr string
	// Changes overrides the store watch; used by tests.
	Changes <-chan struct{}
	// Now and RolloverCheck drive the day rollover; zero values mean the
	// wall clock checked every timeutil.RolloverCheck.
	Now           func() time.Time
	RolloverCheck time.Duration
}

// Do blocks until ctx is done. Cancellation is not an error.
func (w *Watch) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pp := w.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	now := w.Now
	if now == nil {
		now = time.Now
	}
	cfg := w.Config
	live := cfg.ReferenceDate.IsZero()
	today := timeutil.KeyFor(now())
	if !live {
		today = timeutil.KeyFor(cfg.ReferenceDate)
	}
	if cfg.Range.IsZero() {
		cfg.Range = aggregate.MonthRange(today)
	}
	if cfg.Selected.IsZero() {
		cfg.Selected = today
	}

	sink := pipeline.SinkFunc(func(_ context.Context, agg *aggregate.Aggregate, counts legend.Counts) error {
		pp.Title(fmt.Sprintf("Updated %s", time.Now().Format("15:04:05")))
		pp.Calendar(agg.Range.Start, agg)
		pp.Legend(counts)
		pp.NewLine()
		return nil
	})

	reg := prometheus.NewRegistry()
	pipe, err := pipeline.New(w.Service, sink, pipeline.Options{
		Config:     cfg,
		PageSize:   w.PageSize,
		Logger:     log.Named("pipeline"),
		Registerer: reg,
	})
	if err != nil {
		return err
	}
	defer pipe.Stop()

	if w.MetricsAddr != "" {
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metricsHandler(reg)}
		go func() {
			log.Info("serving metrics", zap.String("addr", w.MetricsAddr), zap.String("metrics_endpoint", "/metrics"))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	changes := w.Changes
	if changes == nil {
		events, err := w.Service.Watch(ctx)
		if err != nil {
			return err
		}
		changes = store.Changes(events)
	}

	if live {
		go timeutil.OnRollover(ctx, now, w.RolloverCheck, func(day timeutil.DateKey) {
			log.Info("day rolled over", zap.String("today", day.String()))
			if _, err := pipe.Focus(ctx, day, aggregate.MonthRange(day)); err != nil && ctx.Err() == nil {
				log.Warn("refocus after rollover", zap.Error(err))
			}
		})
	}

	err = pipe.Run(ctx, changes)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}
