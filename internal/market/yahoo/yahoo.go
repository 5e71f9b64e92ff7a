// Package yahoo implements the market data provider against the
// Yahoo Finance chart and options APIs.
package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
)

const (
	chartBaseURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	optionsBaseURL = "https://query1.finance.yahoo.com/v7/finance/options"
)

// validTicker matches tickers like AAPL, ^NSEI, ^BSESN, 600519.SS
var validTicker = regexp.MustCompile(`^\^?[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateTicker checks if a ticker has valid format
func validateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker cannot be empty")
	}
	if len(ticker) > 20 {
		return fmt.Errorf("ticker too long: %s", ticker)
	}
	if !validTicker.MatchString(ticker) {
		return fmt.Errorf("invalid ticker format: %s", ticker)
	}
	return nil
}

// DefaultTimeout bounds chart and options API calls when the caller
// does not specify a timeout.
const DefaultTimeout = 10 * time.Second

// Yahoo implements the Yahoo Finance market data provider
type Yahoo struct {
	client *http.Client
}

// New creates a new Yahoo provider. A non-positive timeout falls back
// to DefaultTimeout.
func New(timeout time.Duration) *Yahoo {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Yahoo{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// FetchQuote builds a real-time snapshot from the two most recent
// daily bars: price and OHLC come from the latest bar, change and
// changePercent from the close-to-close move.
func (y *Yahoo) FetchQuote(ticker string) (*core.Quote, error) {
	bars, err := y.FetchHistory(ticker, "5d", "1d")
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		return nil, fmt.Errorf("not enough recent bars for %s", ticker)
	}

	curr := bars[len(bars)-1]
	prev := bars[len(bars)-2]
	change := curr.Close - prev.Close

	return &core.Quote{
		Price:         curr.Close,
		Change:        change,
		ChangePercent: change / prev.Close * 100,
		Open:          curr.Open,
		High:          curr.High,
		Low:           curr.Low,
		Volume:        curr.Volume,
		Time:          curr.Time,
		Source:        y.Name(),
	}, nil
}

// FetchHistory fetches historical OHLCV data over a named range.
func (y *Yahoo) FetchHistory(ticker, period, interval string) ([]core.OHLCV, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		chartBaseURL, ticker, toYahooInterval(interval), toYahooRange(period))

	resp, err := y.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return parseChart(&result, ticker, interval)
}

// parseChart converts a chart API payload into bars, skipping rows
// with missing values.
func parseChart(result *chartResponse, ticker, interval string) ([]core.OHLCV, error) {
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no data for ticker: %s", ticker)
	}

	r := result.Chart.Result[0]
	timestamps := r.Timestamp
	quotes := r.Indicators.Quote[0]

	data := make([]core.OHLCV, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(quotes.Open) || quotes.Open[i] == nil || quotes.Close[i] == nil {
			continue
		}
		var volume int64
		if quotes.Volume[i] != nil {
			volume = int64(*quotes.Volume[i])
		}
		data = append(data, core.OHLCV{
			Interval: interval,
			Open:     *quotes.Open[i],
			High:     *quotes.High[i],
			Low:      *quotes.Low[i],
			Close:    *quotes.Close[i],
			Volume:   volume,
			Time:     time.Unix(int64(ts), 0),
		})
	}

	return data, nil
}

func toYahooInterval(interval string) string {
	switch interval {
	case "1m", "5m", "15m", "1h", "1d", "1wk", "1mo":
		return interval
	default:
		return "1d"
	}
}

func toYahooRange(period string) string {
	switch period {
	case "1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "max":
		return period
	default:
		return "1y"
	}
}

// Yahoo chart API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol              string  `json:"symbol"`
	RegularMarketPrice  float64 `json:"regularMarketPrice"`
	RegularMarketVolume int     `json:"regularMarketVolume"`
	RegularMarketTime   int     `json:"regularMarketTime"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int     `json:"volume"`
}
