package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/handler"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/backtest"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/config"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/logger"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market/yahoo"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/metrics"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/paper"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TradeForge server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	// Load config
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting TradeForge server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	provider, err := buildProvider(cfg.Provider)
	if err != nil {
		return err
	}

	service := market.NewService(market.NewRegistry(), provider, log)
	engine := backtest.New(log)
	executor := paper.NewExecutor(service, log)

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
		service.SetMetrics(registry)
	}

	recorder, err := buildRecorder(cfg.Archive)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		CORSOrigins: cfg.Server.CORSOrigins,
		MetricsPath: cfg.Metrics.Path,
	}, api.Handlers{
		Market: handler.NewMarketHandler(service),
		Backtest: handler.NewBacktestHandler(service, engine, recorder, registry, handler.BacktestDefaults{
			InitialCapital: cfg.Backtest.InitialCapital,
			PositionSize:   cfg.Backtest.PositionSize,
			Period:         cfg.Backtest.DefaultPeriod,
		}, log),
		Strategy:   handler.NewStrategyHandler(),
		PaperTrade: handler.NewPaperTradeHandler(executor, registry),
		Health:     handler.NewHealthHandler(version),
	}, registry, log)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down TradeForge server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

// buildProvider creates the configured market data provider.
func buildProvider(cfg config.ProviderConfig) (market.Provider, error) {
	switch cfg.Name {
	case "", "yahoo":
		return yahoo.New(time.Duration(cfg.TimeoutSeconds) * time.Second), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

// buildRecorder creates the backtest result recorder, or nil when
// archiving is disabled.
func buildRecorder(cfg config.ArchiveConfig) (*archive.Recorder, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var storage archive.Storage
	var err error

	switch cfg.Type {
	case "s3":
		storage, err = archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		storage, err = archive.NewLocalFS(cfg.Path)
	}
	if err != nil {
		return nil, err
	}

	return archive.NewRecorder(storage), nil
}
