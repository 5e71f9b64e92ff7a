package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
)

// maxContracts caps how many calls and puts are returned per chain.
const maxContracts = 10

// FetchOptions fetches the options chain for the nearest expiry.
func (y *Yahoo) FetchOptions(ticker string) (*core.OptionsChain, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", optionsBaseURL, ticker)

	resp, err := y.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching options: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result optionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return parseOptions(&result, ticker)
}

func parseOptions(result *optionsResponse, ticker string) (*core.OptionsChain, error) {
	if result.OptionChain.Error != nil {
		return nil, fmt.Errorf("yahoo error: %s", result.OptionChain.Error.Description)
	}
	if len(result.OptionChain.Result) == 0 || len(result.OptionChain.Result[0].Options) == 0 {
		return nil, fmt.Errorf("no options for ticker: %s", ticker)
	}

	opts := result.OptionChain.Result[0].Options[0]

	return &core.OptionsChain{
		Expiry: time.Unix(opts.ExpirationDate, 0).UTC().Format("2006-01-02"),
		Calls:  toContracts(opts.Calls),
		Puts:   toContracts(opts.Puts),
	}, nil
}

func toContracts(rows []optionRow) []core.OptionContract {
	n := len(rows)
	if n > maxContracts {
		n = maxContracts
	}
	contracts := make([]core.OptionContract, 0, n)
	for _, row := range rows[:n] {
		contracts = append(contracts, core.OptionContract{
			ContractSymbol: row.ContractSymbol,
			Strike:         row.Strike,
			LastPrice:      row.LastPrice,
			Bid:            row.Bid,
			Ask:            row.Ask,
			Volume:         row.Volume,
			OpenInterest:   row.OpenInterest,
		})
	}
	return contracts
}

// Yahoo options API response types
type optionsResponse struct {
	OptionChain struct {
		Result []struct {
			ExpirationDates []int64     `json:"expirationDates"`
			Options         []optionSet `json:"options"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"optionChain"`
}

type optionSet struct {
	ExpirationDate int64       `json:"expirationDate"`
	Calls          []optionRow `json:"calls"`
	Puts           []optionRow `json:"puts"`
}

type optionRow struct {
	ContractSymbol string  `json:"contractSymbol"`
	Strike         float64 `json:"strike"`
	LastPrice      float64 `json:"lastPrice"`
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"openInterest"`
}
