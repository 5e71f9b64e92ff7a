package backtest

import (
	"math"
	"testing"
)

func TestCalculateMetrics_Empty(t *testing.T) {
	result := calculateMetrics(50000, 50000, nil)

	if result.TotalTrades != 0 {
		t.Errorf("TotalTrades = %d, want 0", result.TotalTrades)
	}
	if result.FinalCapital != 50000 {
		t.Errorf("FinalCapital = %f, want initial capital", result.FinalCapital)
	}
	if result.WinRate != 0 || result.AvgWin != 0 || result.AvgLoss != 0 || result.ProfitFactor != 0 {
		t.Error("all rate fields must be zero for an empty ledger")
	}
}

func TestCalculateMetrics_Counts(t *testing.T) {
	trades := []Trade{
		{PnL: 100},
		{PnL: 300},
		{PnL: -50},
		{PnL: 0}, // breakeven counts toward neither side
	}

	result := calculateMetrics(10000, 10350, trades)

	if result.TotalTrades != 4 {
		t.Errorf("TotalTrades = %d, want 4", result.TotalTrades)
	}
	if result.WinningTrades != 2 {
		t.Errorf("WinningTrades = %d, want 2", result.WinningTrades)
	}
	if result.LosingTrades != 1 {
		t.Errorf("LosingTrades = %d, want 1", result.LosingTrades)
	}
	if result.WinRate != 50 {
		t.Errorf("WinRate = %f, want 50", result.WinRate)
	}
	if result.TotalPnL != 350 {
		t.Errorf("TotalPnL = %f, want 350", result.TotalPnL)
	}
	if result.AvgWin != 200 {
		t.Errorf("AvgWin = %f, want 200", result.AvgWin)
	}
	if result.AvgLoss != -50 {
		t.Errorf("AvgLoss = %f, want -50", result.AvgLoss)
	}
}

// The profit factor is |avgWin/avgLoss|, not gross profit over gross
// loss. The two definitions diverge whenever win and loss counts
// differ; this pins down the implemented one.
func TestCalculateMetrics_ProfitFactorIsAverageRatio(t *testing.T) {
	trades := []Trade{
		{PnL: 100},
		{PnL: 100},
		{PnL: -50},
	}

	result := calculateMetrics(10000, 10150, trades)

	// avgWin 100, avgLoss -50 -> 2.0 (gross ratio would be 4.0)
	if math.Abs(result.ProfitFactor-2.0) > 1e-9 {
		t.Errorf("ProfitFactor = %f, want 2.0", result.ProfitFactor)
	}
}

func TestCalculateMetrics_NoLosses(t *testing.T) {
	trades := []Trade{{PnL: 100}}

	result := calculateMetrics(10000, 10100, trades)

	if result.ProfitFactor != 0 {
		t.Errorf("ProfitFactor = %f, want 0 when there are no losses", result.ProfitFactor)
	}
	if result.WinRate != 100 {
		t.Errorf("WinRate = %f, want 100", result.WinRate)
	}
}
