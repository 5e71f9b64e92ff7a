// Package api wires the HTTP transport around the engine: routing,
// middleware, CORS and graceful shutdown.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/handler"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/middleware"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	APIKey      string
	CORSOrigins []string
	MetricsPath string
}

// Handlers groups the route handlers the server exposes.
type Handlers struct {
	Market     *handler.MarketHandler
	Backtest   *handler.BacktestHandler
	Strategy   *handler.StrategyHandler
	PaperTrade *handler.PaperTradeHandler
	Health     *handler.HealthHandler
}

// Server represents the TradeForge HTTP server
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, h Handlers, registry *metrics.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/market/indices", h.Market.Indices)
	mux.HandleFunc("GET /api/market/index/{symbol}", h.Market.Index)
	mux.HandleFunc("GET /api/market/historical/{symbol}", h.Market.Historical)
	mux.HandleFunc("GET /api/market/options/{symbol}", h.Market.Options)
	mux.HandleFunc("POST /api/backtest", h.Backtest.Run)
	mux.HandleFunc("GET /api/backtest/archive/{symbol}", h.Backtest.Archive)
	mux.HandleFunc("POST /api/strategy/validate", h.Strategy.Validate)
	mux.HandleFunc("POST /api/paper-trade/execute", h.PaperTrade.Execute)
	mux.HandleFunc("GET /api/health", h.Health.Check)

	var root http.Handler = mux
	root = middleware.APIKeyAuth(cfg.APIKey)(root)

	if registry != nil {
		metricsPath := cfg.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		outer := http.NewServeMux()
		outer.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		outer.Handle("/", metrics.HTTPMiddleware(registry)(root))
		root = outer
	}

	root = cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	}).Handler(root)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      root,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
