package core

import "time"

// Exchange identifies the listing exchange of an index.
type Exchange string

const (
	ExchangeNSE Exchange = "NSE"
	ExchangeBSE Exchange = "BSE"
)

// Quote represents a real-time index snapshot derived from the two
// most recent daily bars.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Exchange      Exchange  `json:"exchange"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Volume        int64     `json:"volume"`
	Time          time.Time `json:"time"`
	Source        string    `json:"source"`
}

// IsValid checks if the quote has required fields
func (q Quote) IsValid() bool {
	return q.Symbol != "" && q.Price > 0
}

// OHLCV represents a single price bar.
type OHLCV struct {
	Symbol   string    `json:"symbol"`
	Interval string    `json:"interval"` // "1m", "5m", "1d"
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	Time     time.Time `json:"time"`
}

// OptionContract is a single row of an options chain.
type OptionContract struct {
	ContractSymbol string  `json:"contractSymbol"`
	Strike         float64 `json:"strike"`
	LastPrice      float64 `json:"lastPrice"`
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"openInterest"`
}

// OptionsChain holds calls and puts for the nearest expiry.
type OptionsChain struct {
	Symbol string           `json:"symbol"`
	Expiry string           `json:"expiry"`
	Calls  []OptionContract `json:"calls"`
	Puts   []OptionContract `json:"puts"`
}

// OrderSide represents the side of a paper trade order.
type OrderSide string

const (
	OrderBuy  OrderSide = "buy"
	OrderSell OrderSide = "sell"
)
