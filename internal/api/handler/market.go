// Package handler implements the HTTP API handlers.
package handler

import (
	"errors"
	"net/http"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market"
)

// MarketHandler serves index quotes, historical bars and options chains.
type MarketHandler struct {
	service *market.Service
}

// NewMarketHandler creates a new market data handler.
func NewMarketHandler(service *market.Service) *MarketHandler {
	return &MarketHandler{service: service}
}

// Indices handles GET /api/market/indices.
func (h *MarketHandler) Indices(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.AllQuotes())
}

// Index handles GET /api/market/index/{symbol}.
func (h *MarketHandler) Index(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	quote, err := h.service.Quote(symbol)
	if err != nil {
		response.Error(w, marketStatus(err), err)
		return
	}
	response.JSON(w, http.StatusOK, quote)
}

// Historical handles GET /api/market/historical/{symbol}?period=&interval=.
func (h *MarketHandler) Historical(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1y"
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "1d"
	}

	bars, err := h.service.History(symbol, period, interval)
	if err != nil {
		response.Error(w, marketStatus(err), err)
		return
	}
	response.JSON(w, http.StatusOK, bars)
}

// Options handles GET /api/market/options/{symbol}.
func (h *MarketHandler) Options(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	chain, err := h.service.Options(symbol)
	if err != nil {
		response.Error(w, marketStatus(err), err)
		return
	}
	response.JSON(w, http.StatusOK, chain)
}

// marketStatus maps market data errors to HTTP status codes.
func marketStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrSymbolNotFound), errors.Is(err, core.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
