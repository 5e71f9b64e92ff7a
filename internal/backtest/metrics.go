package backtest

import "math"

// calculateMetrics reduces the trade ledger to summary performance
// metrics. With no trades every count and rate is zero and final
// capital equals initial capital.
//
// ProfitFactor here is |avgWin / avgLoss|, the ratio of the average
// winning trade to the average losing trade. This differs from the
// conventional gross-profit/gross-loss definition and is kept for
// compatibility with existing consumers of the result payload.
func calculateMetrics(initialCapital, finalCapital float64, trades []Trade) *Result {
	result := &Result{
		FinalCapital: finalCapital,
		TotalTrades:  len(trades),
		Trades:       trades,
	}

	if len(trades) == 0 {
		result.FinalCapital = initialCapital
		return result
	}

	var winSum, lossSum float64
	for _, t := range trades {
		result.TotalPnL += t.PnL
		switch {
		case t.IsWin():
			result.WinningTrades++
			winSum += t.PnL
		case t.IsLoss():
			result.LosingTrades++
			lossSum += t.PnL
		}
	}

	result.WinRate = float64(result.WinningTrades) / float64(len(trades)) * 100

	if result.WinningTrades > 0 {
		result.AvgWin = winSum / float64(result.WinningTrades)
	}
	if result.LosingTrades > 0 {
		result.AvgLoss = lossSum / float64(result.LosingTrades)
	}
	if result.AvgLoss != 0 {
		result.ProfitFactor = math.Abs(result.AvgWin / result.AvgLoss)
	}

	return result
}
