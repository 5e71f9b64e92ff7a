// Package backtest replays trading strategies bar-by-bar over an
// indicator-enriched price series, tracking at most one open position
// and reducing the completed trades to performance metrics.
package backtest

import (
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"go.uber.org/zap"
)

// Engine runs strategy backtests. An Engine carries no per-run state:
// every Run builds its capital, position and ledger locally, so
// independent runs are reproducible and may execute concurrently.
type Engine struct {
	logger *zap.Logger
}

// New creates a new backtest Engine
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// position is the single open position, or absent when flat.
type position struct {
	entryPrice float64
	quantity   int
	entryTime  time.Time
}

// Run executes a backtest of cfg over the enriched series. Bars whose
// required indicator values are undefined are trimmed first; the loop
// starts at the second remaining bar so every evaluation sees a
// (previous, current) pair. A position still open after the last bar
// is force-closed at that bar's close.
func (e *Engine) Run(cfg Config, series []Bar) (*Result, error) {
	cfg = cfg.withDefaults()

	build, ok := strategies[cfg.Type]
	if !ok {
		return nil, core.ErrStrategyUnknown
	}
	strat := build(cfg)

	bars := trimWarmup(series, strat.ready)
	if len(bars) == 0 {
		return nil, core.ErrNoData
	}

	sizeFraction := cfg.PositionSize / 100
	capital := cfg.InitialCapital
	var pos *position
	trades := make([]Trade, 0)

	for i := 1; i < len(bars); i++ {
		prev, curr := bars[i-1], bars[i]

		switch strat.evaluate(prev, curr, pos != nil) {
		case EnterLong:
			if pos != nil {
				continue
			}
			quantity := int(capital * sizeFraction / curr.Close)
			if quantity <= 0 {
				// Capital fraction too small relative to price.
				continue
			}
			pos = &position{
				entryPrice: curr.Close,
				quantity:   quantity,
				entryTime:  curr.Time,
			}

		case ExitLong:
			if pos == nil {
				continue
			}
			trade := closeTrade(pos, curr)
			capital += trade.PnL
			trades = append(trades, trade)
			pos = nil
		}
	}

	// Force-close any position left open at the end of the series.
	if pos != nil {
		last := bars[len(bars)-1]
		trade := closeTrade(pos, last)
		capital += trade.PnL
		trades = append(trades, trade)
		pos = nil
	}

	result := calculateMetrics(cfg.InitialCapital, capital, trades)

	e.logger.Debug("backtest complete",
		zap.String("strategy", string(cfg.Type)),
		zap.String("symbol", cfg.Symbol),
		zap.Int("bars", len(bars)),
		zap.Int("trades", result.TotalTrades),
		zap.Float64("total_pnl", result.TotalPnL),
	)

	return result, nil
}

// closeTrade settles the open position against the given bar's close.
func closeTrade(pos *position, bar Bar) Trade {
	pnl := (bar.Close - pos.entryPrice) * float64(pos.quantity)
	return Trade{
		EntryTime:  pos.entryTime,
		ExitTime:   bar.Time,
		EntryPrice: pos.entryPrice,
		ExitPrice:  bar.Close,
		Quantity:   pos.quantity,
		PnL:        pnl,
		PnLPercent: pnl / (pos.entryPrice * float64(pos.quantity)) * 100,
	}
}

// trimWarmup drops bars whose required indicator values are undefined.
func trimWarmup(series []Bar, ready func(Bar) bool) []Bar {
	bars := make([]Bar, 0, len(series))
	for _, b := range series {
		if ready(b) {
			bars = append(bars, b)
		}
	}
	return bars
}
