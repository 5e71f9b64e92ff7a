package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/backtest"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/storage/archive"
)

func newBacktestHandler(p *stubProvider) *BacktestHandler {
	return NewBacktestHandler(newMarketService(p), backtest.New(nil), nil, nil, BacktestDefaults{}, nil)
}

func TestBacktestHandler_Run(t *testing.T) {
	h := newBacktestHandler(&stubProvider{history: dailyBars(60, 100)})

	body := `{
		"strategy": {
			"type": "sma_crossover",
			"symbol": "NIFTY 50",
			"initialCapital": 1000000,
			"positionSize": 10,
			"shortPeriod": 3,
			"longPeriod": 5
		},
		"period": "3mo"
	}`
	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data backtest.Result `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Data.FinalCapital <= 0 {
		t.Errorf("FinalCapital = %f, want positive", resp.Data.FinalCapital)
	}
	if resp.Data.Trades == nil {
		t.Error("Trades must serialize as an array, not null")
	}
}

func TestBacktestHandler_DefaultsApplied(t *testing.T) {
	// An empty request body falls back to NIFTY 50, the default period
	// and the sma_crossover strategy defaults.
	h := newBacktestHandler(&stubProvider{history: dailyBars(120, 100)})

	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data backtest.Result `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	// Monotonically rising closes never produce a crossover entry, so
	// the default capital passes through untouched.
	if resp.Data.FinalCapital != 1000000 {
		t.Errorf("FinalCapital = %f, want the 1000000 default", resp.Data.FinalCapital)
	}
}

func TestBacktestHandler_ConfiguredDefaults(t *testing.T) {
	// Capital and position size omitted by the request come from the
	// handler's configured defaults, not the engine's built-in ones.
	svc := newMarketService(&stubProvider{history: dailyBars(120, 100)})
	h := NewBacktestHandler(svc, backtest.New(nil), nil, nil, BacktestDefaults{
		InitialCapital: 500000,
		PositionSize:   20,
		Period:         "6mo",
	}, nil)

	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data backtest.Result `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	// No trades on a monotone series; the configured capital, not the
	// engine's 1000000 fallback, must come back out.
	if resp.Data.FinalCapital != 500000 {
		t.Errorf("FinalCapital = %f, want the configured 500000", resp.Data.FinalCapital)
	}
}

func TestBacktestHandler_Archive(t *testing.T) {
	storage, err := archive.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	recorder := archive.NewRecorder(storage)

	cfg := backtest.Config{Symbol: "NIFTY 50", Type: backtest.KindRSI}
	result := &backtest.Result{Trades: []backtest.Trade{}}
	if _, err := recorder.Save(context.Background(), cfg, "1y", result); err != nil {
		t.Fatal(err)
	}

	h := NewBacktestHandler(newMarketService(&stubProvider{}), backtest.New(nil), recorder, nil, BacktestDefaults{}, nil)

	req := httptest.NewRequest("GET", "/api/backtest/archive/NIFTY%2050", nil)
	req.SetPathValue("symbol", "NIFTY 50")
	w := httptest.NewRecorder()

	h.Archive(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 archived run, got %d", len(resp.Data))
	}
	if !strings.HasPrefix(resp.Data[0], "backtests/NIFTY_50/") {
		t.Errorf("path = %q, want backtests/NIFTY_50/ prefix", resp.Data[0])
	}
}

func TestBacktestHandler_ArchiveDisabled(t *testing.T) {
	h := newBacktestHandler(&stubProvider{})

	req := httptest.NewRequest("GET", "/api/backtest/archive/NIFTY%2050", nil)
	req.SetPathValue("symbol", "NIFTY 50")
	w := httptest.NewRecorder()

	h.Archive(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 when archiving is disabled, got %d", w.Code)
	}
}

func TestBacktestHandler_UnknownStrategy(t *testing.T) {
	h := newBacktestHandler(&stubProvider{history: dailyBars(60, 100)})

	body := `{"strategy": {"type": "martingale", "symbol": "NIFTY 50"}}`
	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error.Code != "STRATEGY_UNKNOWN" {
		t.Errorf("Code = %q, want STRATEGY_UNKNOWN", resp.Error.Code)
	}
}

func TestBacktestHandler_NoHistory(t *testing.T) {
	h := newBacktestHandler(&stubProvider{history: nil})

	body := `{"strategy": {"type": "sma_crossover", "symbol": "NIFTY 50"}}`
	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when no data is available, got %d", w.Code)
	}
}

func TestBacktestHandler_BadJSON(t *testing.T) {
	h := newBacktestHandler(&stubProvider{history: dailyBars(60, 100)})

	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestBacktestHandler_UnknownSymbol(t *testing.T) {
	h := newBacktestHandler(&stubProvider{history: dailyBars(60, 100)})

	body := `{"strategy": {"type": "sma_crossover", "symbol": "DOW JONES"}}`
	req := httptest.NewRequest("POST", "/api/backtest", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Run(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown symbol, got %d", w.Code)
	}
}
