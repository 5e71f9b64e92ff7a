package backtest

import (
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/indicator"
)

// BuildSeries converts raw price bars into an enriched series carrying
// the indicator values the configured strategy reads. Only the fields
// the strategy kind needs are populated; the rest stay NaN.
func BuildSeries(bars []core.OHLCV, cfg Config) []Bar {
	cfg = cfg.withDefaults()

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	series := make([]Bar, len(bars))
	for i, b := range bars {
		bar := NewBar()
		bar.Time = b.Time
		bar.Open = b.Open
		bar.High = b.High
		bar.Low = b.Low
		bar.Close = b.Close
		bar.Volume = b.Volume
		series[i] = bar
	}

	switch cfg.Type {
	case KindSMACrossover:
		short := indicator.SMA(closes, cfg.ShortPeriod)
		long := indicator.SMA(closes, cfg.LongPeriod)
		for i := range series {
			series[i].ShortMA = short[i]
			series[i].LongMA = long[i]
		}
	case KindRSI:
		rsi := indicator.RSI(closes, cfg.RSIPeriod)
		for i := range series {
			series[i].RSI = rsi[i]
		}
	case KindMACD:
		line, signal := indicator.MACD(closes,
			indicator.MACDFastPeriod, indicator.MACDSlowPeriod, indicator.MACDSignalPeriod)
		for i := range series {
			series[i].MACD = line[i]
			series[i].MACDSignal = signal[i]
		}
	}

	return series
}
