package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"seriesKernel/internal/adapters/logger" // Import the logger package for LogLevel
	"seriesKernel/internal/domain"
	"seriesKernel/internal/series"
)

// Kline sources
const (
	SourceBinance = "binance"
	SourceCSV     = "csv"
)

// Config holds all application configuration.
type Config struct {
	// Kline source
	KlineSource string // "binance" or "csv"
	CSVPath     string // Input file when KlineSource is "csv"

	// Binance API (optional, klines are public)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Market
	Symbol     string
	Interval   string
	KlineLimit int

	// Indicator Parameters
	PriceSource   domain.PriceSource
	SmoothKind    series.SmoothKind
	SmoothPeriod  int     // Slow line, e.g. 21
	FastPeriod    int     // Fast line for cross detection, e.g. 9
	RSIPeriod     int     // e.g., 14
	RSIOverbought float64 // e.g., 70.0
	RSIOversold   float64 // e.g., 30.0
	ATRPeriod     int     // e.g., 14
	BollPeriod    int     // e.g., 20
	BollWidth     float64 // e.g., 2.0

	// Output
	DBPath    string // Empty disables persistence
	OutputCSV string // Empty disables CSV export

	// Scheduling
	RefreshInterval time.Duration // Zero runs a single cycle

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Kline source
	cfg.KlineSource = strings.ToLower(getEnv("KLINE_SOURCE", SourceBinance))
	cfg.CSVPath = getEnv("CSV_PATH", "")
	switch cfg.KlineSource {
	case SourceBinance:
	case SourceCSV:
		if cfg.CSVPath == "" {
			errs = append(errs, "CSV_PATH must be set when KLINE_SOURCE=csv")
		}
	default:
		errs = append(errs, fmt.Sprintf("KLINE_SOURCE must be %q or %q, got %q", SourceBinance, SourceCSV, cfg.KlineSource))
	}

	// Binance API
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)

	// Market
	cfg.Symbol = getEnv("SYMBOL", "ETHUSDT")
	cfg.Interval = getEnv("INTERVAL", "1h")
	cfg.KlineLimit, err = getEnvAsIntRequired("KLINE_LIMIT", 500)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid KLINE_LIMIT: %v", err))
	} else if cfg.KlineLimit <= 0 || cfg.KlineLimit > 1500 {
		errs = append(errs, "KLINE_LIMIT must be between 1 and 1500")
	}

	// Indicator Parameters
	cfg.PriceSource, err = domain.ParsePriceSource(getEnv("PRICE_SOURCE", string(domain.SourceClose)))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PRICE_SOURCE: %v", err))
	}
	cfg.SmoothKind, err = series.ParseSmoothKind(getEnv("SMOOTH_KIND", "EMA"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SMOOTH_KIND: %v", err))
	}

	periods := []struct {
		key    string
		target *int
		def    int
	}{
		{"SMOOTH_PERIOD", &cfg.SmoothPeriod, 21},
		{"FAST_PERIOD", &cfg.FastPeriod, 9},
		{"RSI_PERIOD", &cfg.RSIPeriod, 14},
		{"ATR_PERIOD", &cfg.ATRPeriod, 14},
		{"BOLL_PERIOD", &cfg.BollPeriod, 20},
	}
	for _, p := range periods {
		*p.target, err = getEnvAsIntRequired(p.key, p.def)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", p.key, err))
		} else if *p.target <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive", p.key))
		}
	}
	if cfg.FastPeriod >= cfg.SmoothPeriod {
		errs = append(errs, "FAST_PERIOD must be less than SMOOTH_PERIOD")
	}

	cfg.BollWidth, err = getEnvAsFloatRequired("BOLL_WIDTH", 2.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BOLL_WIDTH: %v", err))
	} else if cfg.BollWidth <= 0 {
		errs = append(errs, "BOLL_WIDTH must be positive")
	}

	cfg.RSIOverbought = getEnvAsFloat("RSI_OVERBOUGHT", 70.0)
	cfg.RSIOversold = getEnvAsFloat("RSI_OVERSOLD", 30.0)
	if cfg.RSIOverbought <= cfg.RSIOversold || cfg.RSIOverbought > 100 || cfg.RSIOversold < 0 {
		errs = append(errs, "invalid RSI thresholds (Overbought must be > Oversold, between 0-100)")
	}

	// Output
	cfg.DBPath = getEnv("DB_PATH", "./data/series.db")
	cfg.OutputCSV = getEnv("OUTPUT_CSV", "")

	// Scheduling
	refresh, err := getEnvAsIntRequired("REFRESH_SECONDS", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid REFRESH_SECONDS: %v", err))
	} else if refresh < 0 {
		errs = append(errs, "REFRESH_SECONDS must not be negative")
	}
	cfg.RefreshInterval = time.Duration(refresh) * time.Second

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
