package market

import "github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"

// Index describes a tracked NSE/BSE index and its provider ticker.
type Index struct {
	Name     string
	Ticker   string
	Exchange core.Exchange
}

// nseIndices and bseIndices map display names to Yahoo Finance tickers.
var nseIndices = []Index{
	{Name: "NIFTY 50", Ticker: "^NSEI", Exchange: core.ExchangeNSE},
	{Name: "NIFTY BANK", Ticker: "^NSEBANK", Exchange: core.ExchangeNSE},
	{Name: "NIFTY IT", Ticker: "^CNXIT", Exchange: core.ExchangeNSE},
	{Name: "NIFTY AUTO", Ticker: "^CNXAUTO", Exchange: core.ExchangeNSE},
	{Name: "NIFTY PHARMA", Ticker: "^CNXPHARMA", Exchange: core.ExchangeNSE},
	{Name: "NIFTY FMCG", Ticker: "^CNXFMCG", Exchange: core.ExchangeNSE},
	{Name: "NIFTY METAL", Ticker: "^CNXMETAL", Exchange: core.ExchangeNSE},
}

var bseIndices = []Index{
	{Name: "SENSEX", Ticker: "^BSESN", Exchange: core.ExchangeBSE},
	{Name: "BSE 100", Ticker: "^BSE100", Exchange: core.ExchangeBSE},
	{Name: "BSE 200", Ticker: "^BSE200", Exchange: core.ExchangeBSE},
}

// Registry resolves index display names to tickers.
type Registry struct {
	byName map[string]Index
	order  []string
}

// NewRegistry creates a registry of all supported NSE and BSE indices.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Index)}
	for _, idx := range nseIndices {
		r.add(idx)
	}
	for _, idx := range bseIndices {
		r.add(idx)
	}
	return r
}

func (r *Registry) add(idx Index) {
	r.byName[idx.Name] = idx
	r.order = append(r.order, idx.Name)
}

// Lookup returns the index for a display name.
func (r *Registry) Lookup(name string) (Index, bool) {
	idx, ok := r.byName[name]
	return idx, ok
}

// Names returns all index names, NSE first, in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
