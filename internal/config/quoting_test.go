package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestDotenvQuotedValues(t *testing.T) {
	dir := t.TempDir()
	content := "HTTP_ADDR='127.0.0.1:9090'\nCORS_ALLOWED_ORIGINS=\"https://flip.example,https://admin.flip.example\"\nDEFAULT_DESIRED_PROFIT=45000 # lower target for starter deals\n"
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(envPath)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	t.Setenv("DATA_PATH", dir)

	cfg, err := FromEnv("")
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.HTTPAddr != "127.0.0.1:9090" {
		t.Errorf("Expected quoted address to be unwrapped, got %s", cfg.HTTPAddr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://flip.example" {
		t.Errorf("Unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.Defaults.DesiredProfit != 45000 {
		t.Errorf("Expected inline comment to be stripped, got profit %v", cfg.Defaults.DesiredProfit)
	}
}
