package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
)

func TestStrategyHandler_Validate(t *testing.T) {
	h := NewStrategyHandler()

	body := `{
		"name": "my strategy",
		"type": "sma_crossover",
		"symbol": "NIFTY 50",
		"positionSize": 10,
		"initialCapital": 1000000
	}`
	req := httptest.NewRequest("POST", "/api/strategy/validate", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Validate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Data["valid"] != true {
		t.Errorf("valid = %v, want true", resp.Data["valid"])
	}
}

func TestStrategyHandler_MissingField(t *testing.T) {
	h := NewStrategyHandler()

	// positionSize omitted.
	body := `{
		"name": "my strategy",
		"type": "rsi",
		"symbol": "NIFTY 50",
		"initialCapital": 1000000
	}`
	req := httptest.NewRequest("POST", "/api/strategy/validate", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Validate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error.Code != "CONFIG_MISSING" {
		t.Errorf("Code = %q, want CONFIG_MISSING", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Cause, "positionSize") {
		t.Errorf("Cause = %q, should name the missing field", resp.Error.Cause)
	}
}

func TestStrategyHandler_BadJSON(t *testing.T) {
	h := NewStrategyHandler()

	req := httptest.NewRequest("POST", "/api/strategy/validate", strings.NewReader(`[`))
	w := httptest.NewRecorder()

	h.Validate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
