package main

import (
	"fmt"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/backtest"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/logger"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/market/yahoo"
	"github.com/spf13/cobra"
)

var (
	backtestSymbol   string
	backtestPeriod   string
	backtestCapital  float64
	backtestSize     float64
	backtestShort    int
	backtestLong     int
	backtestRSI      int
	backtestOversold float64
	backtestOverb    float64
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run a strategy backtest over historical index data",
	Long: `Run one of the built-in strategies (sma_crossover, rsi, macd) against
historical bars for an NSE/BSE index and print the performance summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "NIFTY 50", "Index to backtest")
	backtestCmd.Flags().StringVar(&backtestPeriod, "period", "1y", "History period (5d, 1mo, 6mo, 1y, ...)")
	backtestCmd.Flags().Float64Var(&backtestCapital, "capital", 1000000, "Initial capital")
	backtestCmd.Flags().Float64Var(&backtestSize, "position-size", 10, "Percent of capital per entry")
	backtestCmd.Flags().IntVar(&backtestShort, "short-period", 10, "Short SMA period (sma_crossover)")
	backtestCmd.Flags().IntVar(&backtestLong, "long-period", 50, "Long SMA period (sma_crossover)")
	backtestCmd.Flags().IntVar(&backtestRSI, "rsi-period", 14, "RSI period (rsi)")
	backtestCmd.Flags().Float64Var(&backtestOversold, "oversold", 30, "RSI oversold level (rsi)")
	backtestCmd.Flags().Float64Var(&backtestOverb, "overbought", 70, "RSI overbought level (rsi)")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg := backtest.Config{
		Type:           backtest.Kind(args[0]),
		Symbol:         backtestSymbol,
		PositionSize:   backtestSize,
		InitialCapital: backtestCapital,
		ShortPeriod:    backtestShort,
		LongPeriod:     backtestLong,
		RSIPeriod:      backtestRSI,
		Oversold:       backtestOversold,
		Overbought:     backtestOverb,
	}

	service := market.NewService(market.NewRegistry(), yahoo.New(yahoo.DefaultTimeout), log)

	bars, err := service.History(backtestSymbol, backtestPeriod, "1d")
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	series := backtest.BuildSeries(bars, cfg)

	result, err := backtest.New(log).Run(cfg, series)
	if err != nil {
		return err
	}

	fmt.Println("=== TradeForge Backtest ===")
	fmt.Printf("Strategy: %s\n", cfg.Type)
	fmt.Printf("Symbol:   %s\n", backtestSymbol)
	fmt.Printf("Period:   %s (%d bars)\n", backtestPeriod, len(bars))
	fmt.Println()
	fmt.Printf("Final capital: %.2f\n", result.FinalCapital)
	fmt.Printf("Total P&L:     %.2f\n", result.TotalPnL)
	fmt.Printf("Trades:        %d (%d wins, %d losses)\n",
		result.TotalTrades, result.WinningTrades, result.LosingTrades)
	fmt.Printf("Win rate:      %.1f%%\n", result.WinRate)
	fmt.Printf("Avg win:       %.2f\n", result.AvgWin)
	fmt.Printf("Avg loss:      %.2f\n", result.AvgLoss)
	fmt.Printf("Profit factor: %.2f\n", result.ProfitFactor)

	return nil
}
