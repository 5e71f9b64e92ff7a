package backtest

import "math"

// Signal is the decision a strategy makes on each bar.
type Signal int

const (
	Hold Signal = iota
	EnterLong
	ExitLong
)

// Evaluator inspects the previous and current bar, together with
// whether a position is currently open, and returns a signal.
//
// All evaluators share the same crossover idiom: non-strict comparison
// on the previous bar and strict on the current one, so a flat tie
// between two series does not trigger twice.
type Evaluator func(prev, curr Bar, open bool) Signal

// strategy pairs an evaluator with a predicate reporting whether a
// bar carries the indicator values the evaluator reads.
type strategy struct {
	evaluate Evaluator
	ready    func(Bar) bool
}

// strategies is the dispatch table keyed by strategy kind. Selection
// happens once at run start, not per bar.
var strategies = map[Kind]func(Config) strategy{
	KindSMACrossover: newSMACrossover,
	KindRSI:          newRSIThreshold,
	KindMACD:         newMACDCrossover,
}

func newSMACrossover(cfg Config) strategy {
	return strategy{
		evaluate: func(prev, curr Bar, open bool) Signal {
			if !open && prev.ShortMA <= prev.LongMA && curr.ShortMA > curr.LongMA {
				return EnterLong
			}
			if open && prev.ShortMA >= prev.LongMA && curr.ShortMA < curr.LongMA {
				return ExitLong
			}
			return Hold
		},
		ready: func(b Bar) bool {
			return !math.IsNaN(b.ShortMA) && !math.IsNaN(b.LongMA)
		},
	}
}

// newRSIThreshold gates entries on the oversold level and exits on the
// overbought level. The asymmetry is deliberate: a position opened on
// an oversold bounce is held until momentum rolls over from the top.
func newRSIThreshold(cfg Config) strategy {
	oversold := cfg.Oversold
	overbought := cfg.Overbought
	return strategy{
		evaluate: func(prev, curr Bar, open bool) Signal {
			if !open && prev.RSI <= oversold && curr.RSI > oversold {
				return EnterLong
			}
			if open && prev.RSI >= overbought && curr.RSI < overbought {
				return ExitLong
			}
			return Hold
		},
		ready: func(b Bar) bool {
			return !math.IsNaN(b.RSI)
		},
	}
}

func newMACDCrossover(cfg Config) strategy {
	return strategy{
		evaluate: func(prev, curr Bar, open bool) Signal {
			if !open && prev.MACD <= prev.MACDSignal && curr.MACD > curr.MACDSignal {
				return EnterLong
			}
			if open && prev.MACD >= prev.MACDSignal && curr.MACD < curr.MACDSignal {
				return ExitLong
			}
			return Hold
		},
		ready: func(b Bar) bool {
			return !math.IsNaN(b.MACD) && !math.IsNaN(b.MACDSignal)
		},
	}
}
