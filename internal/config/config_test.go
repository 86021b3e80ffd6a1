package config

import (
	"path/filepath"
	"testing"

	"flip-mcp/internal/calculator"
	"flip-mcp/internal/stats"
)

func TestFromEnv_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", "")

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.CompsDir != filepath.Join(dir, "comps") {
		t.Errorf("CompsDir = %s", cfg.CompsDir)
	}
	if cfg.LogDir != filepath.Join(dir, "logs") {
		t.Errorf("LogDir = %s", cfg.LogDir)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.StatMode != stats.StatMedian || cfg.BucketMode != stats.BucketExclusive {
		t.Errorf("modes = %s/%s", cfg.StatMode, cfg.BucketMode)
	}
	if cfg.Defaults != calculator.DefaultInputs() {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if !cfg.EnableMermaidCharts {
		t.Error("mermaid charts should default to enabled")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("STAT_MODE", "average")
	t.Setenv("BUCKET_MODE", "cumulative")
	t.Setenv("DEFAULT_REPAIR_COSTS", "40000")
	t.Setenv("DEFAULT_HOLD_TIME_MONTHS", "9")
	t.Setenv("DEFAULT_POINTS_PCT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ENABLE_MERMAID_CHARTS", "false")

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.StatMode != stats.StatAverage || cfg.BucketMode != stats.BucketCumulative {
		t.Errorf("modes = %s/%s", cfg.StatMode, cfg.BucketMode)
	}
	if cfg.Defaults.RepairCosts != 40000 || cfg.Defaults.HoldTimeMonths != 9 {
		t.Errorf("calculator overrides not applied: %+v", cfg.Defaults)
	}
	if cfg.Defaults.PointsPct != 2 {
		t.Errorf("invalid override should fall back, got %v", cfg.Defaults.PointsPct)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.EnableMermaidCharts {
		t.Error("mermaid charts should be disabled")
	}
}

func TestFromEnv_OutOfRangeDefaults(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("DEFAULT_HOLD_TIME_MONTHS", "0")

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.Defaults.HoldTimeMonths != 6 {
		t.Errorf("expected built-in defaults, got %+v", cfg.Defaults)
	}
}

func TestFromEnv_BadMode(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("STAT_MODE", "mode")

	if _, err := FromEnv(""); err == nil {
		t.Error("expected error for unknown STAT_MODE")
	}
}

func TestFromEnv_LogsFolder(t *testing.T) {
	logs := t.TempDir()
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("LOGS_FOLDER", logs)

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.LogDir != logs {
		t.Errorf("LogDir = %s, want %s", cfg.LogDir, logs)
	}
}
