package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/shelflife/pkg/aggregate"
	"tableflip.dev/shelflife/pkg/urgency"
	"tableflip.dev/shelflife/pkg/window"
)

// DefaultPath is where items live unless configured otherwise.
const DefaultPath = "~/.shelflife"

// Config locates the item store.
type Config interface {
	BasePath() string
}

// FileConfig is the merged result of defaults, .shelflife.yaml and
// SHELFLIFE_* environment variables.
type FileConfig struct {
	Path                    string
	MaxIndicators           int
	VirtualizationThreshold int
	Debounce                time.Duration
	SoonDays                int
	PageSize                int
	LogLevel                string
	LogFormat               string
}

// LoadConfig reads .shelflife.yaml from $SHELFLIFE_CONFIG_PATH or the working
// directory. A missing file is not an error.
func LoadConfig() (*FileConfig, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*FileConfig, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("max_indicators", aggregate.DefaultMaxIndicators)
	v.SetDefault("virtualization_threshold", aggregate.DefaultVirtualizationThreshold)
	v.SetDefault("debounce", aggregate.DefaultDebounce)
	v.SetDefault("soon_days", urgency.DefaultSoonDays)
	v.SetDefault("page_size", window.DefaultPageSize)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetConfigName(".shelflife") // .yaml is implicit
	v.SetEnvPrefix("SHELFLIFE")
	v.AutomaticEnv()

	if override := os.Getenv("SHELFLIFE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &FileConfig{
		Path:                    path,
		MaxIndicators:           v.GetInt("max_indicators"),
		VirtualizationThreshold: v.GetInt("virtualization_threshold"),
		Debounce:                v.GetDuration("debounce"),
		SoonDays:                v.GetInt("soon_days"),
		PageSize:                v.GetInt("page_size"),
		LogLevel:                v.GetString("log_level"),
		LogFormat:               v.GetString("log_format"),
	}, nil
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

// Aggregation returns the aggregation options the file configures. The
// reference date, range and selection are left for the caller.
func (f *FileConfig) Aggregation() aggregate.Config {
	cfg := aggregate.DefaultConfig()
	cfg.MaxIndicatorsPerDate = f.MaxIndicators
	cfg.VirtualizationThreshold = f.VirtualizationThreshold
	cfg.Debounce = f.Debounce
	cfg.SoonDays = f.SoonDays
	return cfg
}

// StaticConfig is a Config fixed to one path.
type StaticConfig string

func (s StaticConfig) BasePath() string {
	return string(s)
}
