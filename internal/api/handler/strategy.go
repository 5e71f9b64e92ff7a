package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
)

// requiredStrategyFields must all be present in a strategy payload.
var requiredStrategyFields = []string{"name", "type", "symbol", "positionSize", "initialCapital"}

// StrategyHandler validates strategy configurations.
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler.
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// Validate handles POST /api/strategy/validate. It checks that every
// required field is present in the payload without interpreting the
// kind-specific parameters.
func (h *StrategyHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	for _, field := range requiredStrategyFields {
		if _, ok := payload[field]; !ok {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("missing required field: %s", field)))
			return
		}
	}

	response.JSON(w, http.StatusOK, map[string]any{"valid": true})
}
