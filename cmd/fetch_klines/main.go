package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"seriesKernel/config"
	"seriesKernel/internal/adapters/binanceclient"
	"seriesKernel/internal/adapters/logger"
	"seriesKernel/internal/utils"
)

func main() {
	days := flag.Int("days", 90, "how many days of history to fetch")
	out := flag.String("out", "", "output CSV file (defaults to data/<symbol>_<interval>_<start>_to_<end>.csv)")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}
	if *days <= 0 {
		log.Fatalf("FATAL: -days must be positive, got %d", *days)
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Exchange Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	symbol, interval := cfg.Symbol, cfg.Interval
	end := time.Now()
	start := end.AddDate(0, 0, -*days)

	appLogger.Info(context.Background(), "Fetching klines", map[string]interface{}{
		"symbol": symbol, "interval": interval, "start": start.Format(time.RFC3339), "end": end.Format(time.RFC3339),
	})
	klines, err := binanceClient.GetKlinesRange(context.Background(), symbol, interval, start, end)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching klines")
		log.Fatalf("Error fetching klines: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched klines", map[string]interface{}{"count": len(klines)})

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("data/%s_%s_%s_to_%s.csv", symbol, interval, start.Format("20060102"), end.Format("20060102"))
	}
	if err := utils.WriteKlinesToCSV(klines, filename); err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved to", map[string]interface{}{"filename": filename})
}
