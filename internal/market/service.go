package market

import (
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/metrics"
	"go.uber.org/zap"
)

// Service answers market data requests in terms of index display
// names, translating them to provider tickers via the registry.
type Service struct {
	registry *Registry
	provider Provider
	logger   *zap.Logger
	metrics  *metrics.Registry
}

// SetMetrics enables provider fetch instrumentation.
func (s *Service) SetMetrics(reg *metrics.Registry) {
	s.metrics = reg
}

// NewService creates a market data service
func NewService(registry *Registry, provider Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		provider: provider,
		logger:   logger,
	}
}

// Quote returns a real-time snapshot for one index.
func (s *Service) Quote(name string) (*core.Quote, error) {
	idx, ok := s.registry.Lookup(name)
	if !ok {
		return nil, core.ErrSymbolNotFound
	}

	quote, err := s.provider.FetchQuote(idx.Ticker)
	if err != nil {
		s.recordFetch("failed")
		return nil, core.WrapError(core.ErrProviderFailed, err)
	}
	s.recordFetch("success")

	quote.Symbol = idx.Name
	quote.Exchange = idx.Exchange
	return quote, nil
}

// Quotes returns snapshots for all given index names. Indices whose
// fetch fails are skipped and logged; the per-symbol error detail is
// surfaced by Quote when a single index is requested.
func (s *Service) Quotes(names []string) []core.Quote {
	quotes := make([]core.Quote, 0, len(names))
	for _, name := range names {
		quote, err := s.Quote(name)
		if err != nil {
			s.logger.Warn("quote fetch failed",
				zap.String("symbol", name),
				zap.Error(err),
			)
			continue
		}
		quotes = append(quotes, *quote)
	}
	return quotes
}

// AllQuotes returns snapshots for every registered index.
func (s *Service) AllQuotes() []core.Quote {
	return s.Quotes(s.registry.Names())
}

// History returns historical bars for an index. An empty series from
// the provider is an error, not a zero-bar success.
func (s *Service) History(name, period, interval string) ([]core.OHLCV, error) {
	idx, ok := s.registry.Lookup(name)
	if !ok {
		return nil, core.ErrSymbolNotFound
	}

	bars, err := s.provider.FetchHistory(idx.Ticker, period, interval)
	if err != nil {
		return nil, core.WrapError(core.ErrProviderFailed, err)
	}
	if len(bars) == 0 {
		return nil, core.ErrNoData
	}

	for i := range bars {
		bars[i].Symbol = idx.Name
	}
	return bars, nil
}

func (s *Service) recordFetch(status string) {
	if s.metrics != nil {
		s.metrics.RecordQuoteFetch(s.provider.Name(), status)
	}
}

// Options returns the nearest-expiry options chain for an index.
func (s *Service) Options(name string) (*core.OptionsChain, error) {
	idx, ok := s.registry.Lookup(name)
	if !ok {
		return nil, core.ErrSymbolNotFound
	}

	chain, err := s.provider.FetchOptions(idx.Ticker)
	if err != nil {
		return nil, core.WrapError(core.ErrProviderFailed, err)
	}

	chain.Symbol = idx.Name
	return chain, nil
}
