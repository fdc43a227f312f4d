package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/shelflife/pkg/aggregate"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SHELFLIFE_CONFIG_PATH", t.TempDir())

	cfg, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want, err := homedir.Expand(DefaultPath)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if cfg.BasePath() != want {
		t.Fatalf("expected path %q, got %q", want, cfg.BasePath())
	}
	agg := cfg.Aggregation()
	def := aggregate.DefaultConfig()
	if agg.MaxIndicatorsPerDate != def.MaxIndicatorsPerDate ||
		agg.VirtualizationThreshold != def.VirtualizationThreshold ||
		agg.Debounce != def.Debounce ||
		agg.SoonDays != def.SoonDays {
		t.Fatalf("expected defaults, got %+v", agg)
	}
	if cfg.PageSize != 50 || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected ambient defaults: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "items") + "\nsoon_days: 5\ndebounce: 1s\nmax_indicators: 2\n")
	if err := os.WriteFile(filepath.Join(dir, ".shelflife.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SHELFLIFE_CONFIG_PATH", dir)

	cfg, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "items") {
		t.Fatalf("unexpected path %q", cfg.BasePath())
	}
	agg := cfg.Aggregation()
	if agg.SoonDays != 5 || agg.Debounce != time.Second || agg.MaxIndicatorsPerDate != 2 {
		t.Fatalf("file values not applied: %+v", agg)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("SHELFLIFE_CONFIG_PATH", t.TempDir())
	t.Setenv("SHELFLIFE_SOON_DAYS", "7")
	t.Setenv("SHELFLIFE_LOG_FORMAT", "json")

	cfg, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SoonDays != 7 || cfg.LogFormat != "json" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadRequiresPath(t *testing.T) {
	if _, err := Load(StaticConfig("")); err == nil {
		t.Fatalf("expected an error for an empty base path")
	}
}
