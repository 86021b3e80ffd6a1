package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"flip-mcp/internal/calculator"
	"flip-mcp/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	CompsDir            string
	ReportDir           string
	HTTPAddr            string
	CORSOrigins         []string
	APIRateLimit        float64 // requests per second; 0 disables limiting
	APIRateBurst        int
	EnableMermaidCharts bool
	BatchConcurrency    int
	StatMode            stats.StatMode
	BucketMode          stats.BucketMode
	Defaults            calculator.Inputs
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return FromEnv(exeDir)
}

// FromEnv builds the configuration from the process environment alone.
// baseDir is the fallback for DATA_PATH.
func FromEnv(baseDir string) (*AppConfig, error) {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if baseDir != "" {
			dataPath = baseDir
		} else {
			dataPath = "."
		}
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		logDir = filepath.Join(dataPath, "logs")
	}
	compsDir := filepath.Join(dataPath, "comps")
	reportDir := filepath.Join(dataPath, "reports")

	for _, dir := range []string{logDir, compsDir, reportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("Failed to create data directory")
		}
	}

	statMode, err := stats.ParseStatMode(getEnv("STAT_MODE", "median"))
	if err != nil {
		return nil, err
	}
	bucketMode, err := stats.ParseBucketMode(getEnv("BUCKET_MODE", "exclusive"))
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		CompsDir:            compsDir,
		ReportDir:           reportDir,
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:         getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		APIRateLimit:        getEnvFloat("API_RATE_LIMIT", 0),
		APIRateBurst:        getEnvInt("API_RATE_BURST", 20),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
		BatchConcurrency:    getEnvInt("BATCH_CONCURRENCY", 4),
		StatMode:            statMode,
		BucketMode:          bucketMode,
		Defaults:            loadDefaults(),
	}

	return cfg, nil
}

func loadDefaults() calculator.Inputs {
	d := calculator.DefaultInputs()
	d.ClosingCostsSalePct = getEnvFloat("DEFAULT_CLOSING_COSTS_SALE_PCT", d.ClosingCostsSalePct)
	d.AgentFeesPct = getEnvFloat("DEFAULT_AGENT_FEES_PCT", d.AgentFeesPct)
	d.DesiredProfit = getEnvFloat("DEFAULT_DESIRED_PROFIT", d.DesiredProfit)
	d.HoldTimeMonths = getEnvInt("DEFAULT_HOLD_TIME_MONTHS", d.HoldTimeMonths)
	d.LoanInterestRate = getEnvFloat("DEFAULT_LOAN_INTEREST_RATE", d.LoanInterestRate)
	d.PointsPct = getEnvFloat("DEFAULT_POINTS_PCT", d.PointsPct)
	d.RepairCosts = getEnvFloat("DEFAULT_REPAIR_COSTS", d.RepairCosts)
	d.MonthlyHoldingCosts = getEnvFloat("DEFAULT_MONTHLY_HOLDING_COSTS", d.MonthlyHoldingCosts)
	d.ClosingCostsBuyPct = getEnvFloat("DEFAULT_CLOSING_COSTS_BUY_PCT", d.ClosingCostsBuyPct)

	if err := d.Validate(); err != nil {
		log.Warn().Err(err).Msg("Calculator defaults from environment are out of range, using built-in defaults")
		return calculator.DefaultInputs()
	}
	return d
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric environment value")
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
