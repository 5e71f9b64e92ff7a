package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/api/response"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market"
)

// stubProvider serves canned data for handler tests.
type stubProvider struct {
	quote   *core.Quote
	history []core.OHLCV
	chain   *core.OptionsChain
	err     error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchQuote(ticker string) (*core.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.quote
	return &out, nil
}

func (s *stubProvider) FetchHistory(ticker, period, interval string) ([]core.OHLCV, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubProvider) FetchOptions(ticker string) (*core.OptionsChain, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.chain
	return &out, nil
}

func newMarketService(p market.Provider) *market.Service {
	return market.NewService(market.NewRegistry(), p, nil)
}

func dailyBars(n int, startClose float64) []core.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.OHLCV, n)
	for i := range bars {
		close := startClose + float64(i)
		bars[i] = core.OHLCV{
			Interval: "1d",
			Open:     close - 0.5,
			High:     close + 1,
			Low:      close - 1,
			Close:    close,
			Volume:   1000,
			Time:     start.AddDate(0, 0, i),
		}
	}
	return bars
}

func TestMarketHandler_Index(t *testing.T) {
	svc := newMarketService(&stubProvider{
		quote: &core.Quote{Price: 22000, Change: 100, ChangePercent: 0.45},
	})
	h := NewMarketHandler(svc)

	req := httptest.NewRequest("GET", "/api/market/index/NIFTY%2050", nil)
	req.SetPathValue("symbol", "NIFTY 50")
	w := httptest.NewRecorder()

	h.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data core.Quote `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Data.Symbol != "NIFTY 50" {
		t.Errorf("Symbol = %q, want NIFTY 50", resp.Data.Symbol)
	}
	if resp.Data.Price != 22000 {
		t.Errorf("Price = %f, want 22000", resp.Data.Price)
	}
}

func TestMarketHandler_IndexUnknown(t *testing.T) {
	h := NewMarketHandler(newMarketService(&stubProvider{}))

	req := httptest.NewRequest("GET", "/api/market/index/NASDAQ", nil)
	req.SetPathValue("symbol", "NASDAQ")
	w := httptest.NewRecorder()

	h.Index(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error.Code != "SYMBOL_NOT_FOUND" {
		t.Errorf("Code = %q, want SYMBOL_NOT_FOUND", resp.Error.Code)
	}
}

func TestMarketHandler_IndexProviderDown(t *testing.T) {
	h := NewMarketHandler(newMarketService(&stubProvider{err: errors.New("timeout")}))

	req := httptest.NewRequest("GET", "/api/market/index/SENSEX", nil)
	req.SetPathValue("symbol", "SENSEX")
	w := httptest.NewRecorder()

	h.Index(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestMarketHandler_Historical(t *testing.T) {
	h := NewMarketHandler(newMarketService(&stubProvider{history: dailyBars(5, 100)}))

	req := httptest.NewRequest("GET", "/api/market/historical/NIFTY%2050?period=1mo", nil)
	req.SetPathValue("symbol", "NIFTY 50")
	w := httptest.NewRecorder()

	h.Historical(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data []core.OHLCV `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp.Data) != 5 {
		t.Errorf("expected 5 bars, got %d", len(resp.Data))
	}
}

func TestMarketHandler_HistoricalEmpty(t *testing.T) {
	h := NewMarketHandler(newMarketService(&stubProvider{history: nil}))

	req := httptest.NewRequest("GET", "/api/market/historical/NIFTY%2050", nil)
	req.SetPathValue("symbol", "NIFTY 50")
	w := httptest.NewRecorder()

	h.Historical(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty history, got %d", w.Code)
	}
}

func TestMarketHandler_Options(t *testing.T) {
	h := NewMarketHandler(newMarketService(&stubProvider{
		chain: &core.OptionsChain{
			Expiry: "2026-09-25",
			Calls:  []core.OptionContract{{Strike: 22000}},
		},
	}))

	req := httptest.NewRequest("GET", "/api/market/options/NIFTY%2050", nil)
	req.SetPathValue("symbol", "NIFTY 50")
	w := httptest.NewRecorder()

	h.Options(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data core.OptionsChain `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Data.Symbol != "NIFTY 50" || len(resp.Data.Calls) != 1 {
		t.Errorf("unexpected chain: %+v", resp.Data)
	}
}
