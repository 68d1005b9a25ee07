package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up

	"seriesKernel/config"
	"seriesKernel/internal/adapters/binanceclient"
	"seriesKernel/internal/adapters/csvsource"
	"seriesKernel/internal/adapters/logger"
	"seriesKernel/internal/adapters/sqlite"
	"seriesKernel/internal/app"
	"seriesKernel/internal/ports"
)

func main() {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Repository (optional)
	var repo ports.SeriesRepository
	if cfg.DBPath != "" {
		sqliteRepo, err := sqlite.NewRepository(sqlite.Config{
			DBPath: cfg.DBPath,
			Logger: appLogger.With(map[string]interface{}{"component": "sqlite"}),
		})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize database repository")
			log.Fatalf("FATAL: Failed to initialize database repository: %v", err) // Also log to stderr
		}
		defer func() {
			if err := sqliteRepo.Close(); err != nil {
				appLogger.Error(ctx, err, "Error closing database repository")
			}
		}()
		repo = sqliteRepo
		appLogger.Info(ctx, "Database repository initialized", map[string]interface{}{"path": cfg.DBPath})
	}

	// 4. Initialize Kline Source
	source, err := newKlineSource(cfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize kline source")
		log.Fatalf("FATAL: Failed to initialize kline source: %v", err)
	}
	appLogger.Info(ctx, "Kline source initialized", map[string]interface{}{"source": cfg.KlineSource})

	// 5. Initialize Application Service
	seriesService, err := app.NewSeriesService(cfg, appLogger, source, repo)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize series service")
		log.Fatalf("FATAL: Failed to initialize series service: %v", err)
	}

	// 6. Start the Service
	if err := seriesService.Start(ctx); err != nil {
		appLogger.Error(ctx, err, "Series service exited with error")
		log.Fatalf("FATAL: Series service exited with error: %v", err)
	}

	appLogger.Info(ctx, "Application finished gracefully.")
}

func newKlineSource(cfg *config.Config, appLogger *logger.StdLogger) (ports.KlineSource, error) {
	if cfg.KlineSource == config.SourceCSV {
		src, err := csvsource.New(cfg.CSVPath, appLogger.With(map[string]interface{}{"component": "csv"}))
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	client, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger.With(map[string]interface{}{"component": "binance"}),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
