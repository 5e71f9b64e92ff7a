package main

import (
	"fmt"
	"strings"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/logger"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market/yahoo"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote [index]",
	Short: "Print a real-time index snapshot",
	Long:  "Print the latest quote for one index, or all registered indices when none is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	service := market.NewService(market.NewRegistry(), yahoo.New(yahoo.DefaultTimeout), log)

	if len(args) == 1 {
		quote, err := service.Quote(args[0])
		if err != nil {
			return err
		}
		printQuote(quote.Symbol, quote.Price, quote.Change, quote.ChangePercent)
		return nil
	}

	for _, q := range service.AllQuotes() {
		printQuote(q.Symbol, q.Price, q.Change, q.ChangePercent)
	}
	return nil
}

func printQuote(symbol string, price, change, changePercent float64) {
	sign := ""
	if change > 0 {
		sign = "+"
	}
	fmt.Printf("%-14s %12.2f  %s%.2f (%s%.2f%%)\n",
		strings.ToUpper(symbol), price, sign, change, sign, changePercent)
}
