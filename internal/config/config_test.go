package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()

	if cfg.TickSeconds != 15 || cfg.WindowSeconds != 30 {
		t.Fatalf("unexpected timing defaults: tick=%d window=%d", cfg.TickSeconds, cfg.WindowSeconds)
	}
	if len(cfg.Thresholds) == 0 {
		t.Fatalf("thresholds not defaulted")
	}
	if cfg.DataFile == "" || cfg.DBPath == "" || cfg.LogFile == "" {
		t.Fatalf("paths not defaulted: %+v", cfg)
	}
}

func TestNormalizeClampsRetention(t *testing.T) {
	cfg := &Config{
		Thresholds:       []int{30, 5},
		WindowSeconds:    30,
		RetentionMinutes: 10,
	}
	cfg.Normalize()
	if cfg.RetentionMinutes < 31 {
		t.Fatalf("retention %dm does not cover 30m threshold + window", cfg.RetentionMinutes)
	}
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosswatch.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("first-run load failed: %v", err)
	}
	if cfg.TickInterval() != 15*time.Second {
		t.Fatalf("unexpected default tick: %s", cfg.TickInterval())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosswatch.yaml")
	in := DefaultConfig()
	in.TickSeconds = 20
	in.DailyReset = true
	if err := Save(path, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if out.TickSeconds != 20 || !out.DailyReset {
		t.Fatalf("round trip lost fields: %+v", out)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosswatch.yaml")
	if err := os.WriteFile(path, []byte("tick_seconds: [not a number"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}
