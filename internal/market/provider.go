// Package market resolves NSE/BSE index names and serves quotes,
// historical bars and options chains through a pluggable data provider.
package market

import "github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"

// Provider defines the interface for market data backends.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// FetchQuote fetches a real-time snapshot for a provider ticker.
	FetchQuote(ticker string) (*core.Quote, error)

	// FetchHistory fetches historical bars for a provider ticker over
	// a named period ("5d", "1mo", "1y", ...) and interval.
	FetchHistory(ticker, period, interval string) ([]core.OHLCV, error)

	// FetchOptions fetches the nearest-expiry options chain.
	FetchOptions(ticker string) (*core.OptionsChain, error)
}
