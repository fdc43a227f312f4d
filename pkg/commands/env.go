package commands

import (
	"go.uber.org/zap"

	"tableflip.dev/shelflife/pkg/app"
	"tableflip.dev/shelflife/pkg/logging"
	"tableflip.dev/shelflife/pkg/store"
)

// env is what every command needs: the merged config, a logger and the
// service over the configured store.
type env struct {
	cfg *store.FileConfig
	log *zap.Logger
	svc *app.Service
}

func loadEnv() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	level, format := cfg.LogLevel, cfg.LogFormat
	if lo.Level != "" {
		level = lo.Level
	}
	if lo.Format != "" {
		format = lo.Format
	}
	log, err := logging.New(level, format)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, store.WithLogger(log.Named("store")))
	if err != nil {
		return nil, err
	}
	return &env{
		cfg: cfg,
		log: log,
		svc: &app.Service{Persistence: p},
	}, nil
}

func (e *env) close() {
	_ = e.log.Sync()
}
