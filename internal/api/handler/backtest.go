package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/backtest"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/metrics"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/storage/archive"
	"go.uber.org/zap"
)

// BacktestRequest is the request body for running a backtest.
type BacktestRequest struct {
	Strategy backtest.Config `json:"strategy"`
	Period   string          `json:"period"`
}

// BacktestDefaults are the configured values applied when a request
// omits the corresponding fields.
type BacktestDefaults struct {
	InitialCapital float64
	PositionSize   float64
	Period         string
}

// BacktestHandler runs strategy backtests over historical index data.
type BacktestHandler struct {
	service  *market.Service
	engine   *backtest.Engine
	recorder *archive.Recorder // nil when archiving is disabled
	registry *metrics.Registry
	logger   *zap.Logger

	defaults BacktestDefaults
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(
	service *market.Service,
	engine *backtest.Engine,
	recorder *archive.Recorder,
	registry *metrics.Registry,
	defaults BacktestDefaults,
	logger *zap.Logger,
) *BacktestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Period == "" {
		defaults.Period = "1y"
	}
	return &BacktestHandler{
		service:  service,
		engine:   engine,
		recorder: recorder,
		registry: registry,
		logger:   logger,
		defaults: defaults,
	}
}

// Run handles POST /api/backtest. The request names a strategy and a
// history period; the handler fetches the bars, enriches them with the
// indicators the strategy needs and runs the engine synchronously.
func (h *BacktestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	if req.Strategy.Symbol == "" {
		req.Strategy.Symbol = "NIFTY 50"
	}
	if req.Strategy.InitialCapital == 0 {
		req.Strategy.InitialCapital = h.defaults.InitialCapital
	}
	if req.Strategy.PositionSize == 0 {
		req.Strategy.PositionSize = h.defaults.PositionSize
	}
	if req.Period == "" {
		req.Period = h.defaults.Period
	}

	bars, err := h.service.History(req.Strategy.Symbol, req.Period, "1d")
	if err != nil {
		h.record(req.Strategy.Type, "no_data", 0)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	series := backtest.BuildSeries(bars, req.Strategy)

	start := time.Now()
	result, err := h.engine.Run(req.Strategy, series)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, core.ErrStrategyUnknown) && !errors.Is(err, core.ErrNoData) {
			status = http.StatusInternalServerError
		}
		h.record(req.Strategy.Type, "failed", time.Since(start).Seconds())
		response.Error(w, status, err)
		return
	}
	h.record(req.Strategy.Type, "success", time.Since(start).Seconds())

	if h.recorder != nil {
		path, err := h.recorder.Save(r.Context(), req.Strategy, req.Period, result)
		if err != nil {
			h.logger.Warn("archiving backtest result failed", zap.Error(err))
		} else {
			h.logger.Debug("backtest result archived", zap.String("path", path))
		}
	}

	response.JSON(w, http.StatusOK, result)
}

// Archive handles GET /api/backtest/archive/{symbol}, listing the
// stored result paths for an index.
func (h *BacktestHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		response.Error(w, http.StatusNotFound,
			core.WrapError(core.ErrArchiveFailed, errors.New("archiving is disabled")))
		return
	}

	paths, err := h.recorder.List(r.Context(), r.PathValue("symbol"))
	if err != nil {
		response.Error(w, http.StatusBadGateway, err)
		return
	}
	response.JSON(w, http.StatusOK, paths)
}

func (h *BacktestHandler) record(kind backtest.Kind, status string, seconds float64) {
	if h.registry != nil {
		h.registry.RecordBacktest(string(kind), status, seconds)
	}
}
