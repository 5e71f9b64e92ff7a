package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/metrics"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/paper"
)

// PaperTradeHandler executes simulated trades at current quotes.
type PaperTradeHandler struct {
	executor *paper.Executor
	registry *metrics.Registry
}

// NewPaperTradeHandler creates a new paper trade handler.
func NewPaperTradeHandler(executor *paper.Executor, registry *metrics.Registry) *PaperTradeHandler {
	return &PaperTradeHandler{
		executor: executor,
		registry: registry,
	}
}

// Execute handles POST /api/paper-trade/execute.
func (h *PaperTradeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var order paper.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrOrderInvalid, err))
		return
	}

	fill, err := h.executor.Execute(order)
	if err != nil {
		h.record(string(order.OrderType), "failed")
		response.Error(w, paperStatus(err), err)
		return
	}

	h.record(string(fill.OrderType), "filled")
	response.JSON(w, http.StatusOK, fill)
}

func (h *PaperTradeHandler) record(side, status string) {
	if h.registry != nil {
		h.registry.RecordPaperTrade(side, status)
	}
}

func paperStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrOrderInvalid):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrSymbolNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
