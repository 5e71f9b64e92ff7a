package backtest

import (
	"math"
	"time"
)

// Kind identifies a strategy type.
type Kind string

const (
	KindSMACrossover Kind = "sma_crossover"
	KindRSI          Kind = "rsi"
	KindMACD         Kind = "macd"
)

// Config holds the strategy configuration for one backtest run.
// It is immutable for the duration of the run.
type Config struct {
	Type           Kind    `json:"type"`
	Name           string  `json:"name,omitempty"`
	Symbol         string  `json:"symbol"`
	PositionSize   float64 `json:"positionSize"`   // percent of current capital committed per entry
	InitialCapital float64 `json:"initialCapital"`

	// SMA crossover parameters
	ShortPeriod int `json:"shortPeriod,omitempty"`
	LongPeriod  int `json:"longPeriod,omitempty"`

	// RSI parameters
	RSIPeriod  int     `json:"rsiPeriod,omitempty"`
	Oversold   float64 `json:"oversold,omitempty"`
	Overbought float64 `json:"overbought,omitempty"`
}

// withDefaults fills unset parameters with the standard defaults.
func (c Config) withDefaults() Config {
	if c.Type == "" {
		c.Type = KindSMACrossover
	}
	if c.PositionSize == 0 {
		c.PositionSize = 10
	}
	if c.InitialCapital == 0 {
		c.InitialCapital = 1000000
	}
	if c.ShortPeriod == 0 {
		c.ShortPeriod = 10
	}
	if c.LongPeriod == 0 {
		c.LongPeriod = 50
	}
	if c.RSIPeriod == 0 {
		c.RSIPeriod = 14
	}
	if c.Oversold == 0 {
		c.Oversold = 30
	}
	if c.Overbought == 0 {
		c.Overbought = 70
	}
	return c
}

// Bar is a price bar enriched with the indicator values a strategy
// needs. Indicator fields are NaN during the warm-up period; such
// bars are trimmed before evaluation.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64

	ShortMA    float64
	LongMA     float64
	RSI        float64
	MACD       float64
	MACDSignal float64
}

// NewBar returns a Bar with all indicator fields undefined.
func NewBar() Bar {
	nan := math.NaN()
	return Bar{
		ShortMA:    nan,
		LongMA:     nan,
		RSI:        nan,
		MACD:       nan,
		MACDSignal: nan,
	}
}

// Trade is one completed round trip from entry to exit. Trades are
// immutable once appended to the ledger.
type Trade struct {
	EntryTime  time.Time `json:"entry_date"`
	ExitTime   time.Time `json:"exit_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Quantity   int       `json:"quantity"`
	PnL        float64   `json:"pnl"`
	PnLPercent float64   `json:"pnl_percent"`
}

// Result holds the complete backtest output.
type Result struct {
	FinalCapital  float64 `json:"finalCapital"`
	TotalPnL      float64 `json:"totalPnL"`
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	WinRate       float64 `json:"winRate"`
	AvgWin        float64 `json:"avgWin"`
	AvgLoss       float64 `json:"avgLoss"`
	ProfitFactor  float64 `json:"profitFactor"`
	Trades        []Trade `json:"trades"`
}

// IsWin returns true if the trade was profitable
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// IsLoss returns true if the trade lost money
func (t Trade) IsLoss() bool {
	return t.PnL < 0
}
