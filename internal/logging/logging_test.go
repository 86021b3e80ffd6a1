package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInit_WritesToConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	if err := Init(Options{Verbose: true, LogDir: dir, Console: &console}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Debug().Str("comp", "mock-1").Msg("debug line")

	if !strings.Contains(console.String(), "debug line") {
		t.Errorf("console output missing message: %q", console.String())
	}
	if strings.Contains(console.String(), "\x1b[") {
		t.Error("console output to a buffer should not be colored")
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"comp":"mock-1"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
}

func TestInit_InfoLevelByDefault(t *testing.T) {
	var console bytes.Buffer
	if err := Init(Options{LogDir: t.TempDir(), Console: &console}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	log.Debug().Msg("hidden")
	if strings.Contains(console.String(), "hidden") {
		t.Error("debug output should be suppressed without --verbose")
	}
}

func TestInit_UnwritableDirFallsBackToConsole(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	var console bytes.Buffer
	err := Init(Options{LogDir: filepath.Join(file, "logs"), Console: &console})
	if err == nil {
		t.Fatal("expected an error for an unusable log directory")
	}

	log.Info().Msg("still logging")
	if !strings.Contains(console.String(), "still logging") {
		t.Error("console logging should survive a file sink failure")
	}
}

func TestResolveLogDir(t *testing.T) {
	exe := filepath.Join("opt", "flip", "flip-mcp")
	tests := []struct {
		name     string
		explicit string
		logs     string
		data     string
		want     string
	}{
		{"explicit wins", "custom", "folder", "data", "custom"},
		{"logs folder", "", "folder", "data", "folder"},
		{"data path", "", "", "data", filepath.Join("data", "logs")},
		{"next to binary", "", "", "", filepath.Join("opt", "flip", "logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOGS_FOLDER", tt.logs)
			t.Setenv("DATA_PATH", tt.data)
			if got := resolveLogDir(tt.explicit, exe, nil); got != tt.want {
				t.Errorf("resolveLogDir() = %s, want %s", got, tt.want)
			}
		})
	}
}
