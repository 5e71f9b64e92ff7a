// Package paper simulates order execution against live quotes without
// touching a real broker.
package paper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
	"go.uber.org/zap"
)

// QuoteSource provides the current price for a symbol.
type QuoteSource interface {
	Quote(symbol string) (*core.Quote, error)
}

// Order is a paper trade request.
type Order struct {
	Symbol    string         `json:"symbol"`
	Quantity  int            `json:"quantity"`
	OrderType core.OrderSide `json:"orderType"`
}

// Fill is the simulated execution of an order at the current quote.
type Fill struct {
	OrderID   string         `json:"orderId"`
	Success   bool           `json:"success"`
	OrderType core.OrderSide `json:"orderType"`
	Symbol    string         `json:"symbol"`
	Quantity  int            `json:"quantity"`
	Price     float64        `json:"price"`
	Total     float64        `json:"total"`
	Timestamp time.Time      `json:"timestamp"`
}

// Executor fills paper orders at the current market quote.
type Executor struct {
	quotes QuoteSource
	logger *zap.Logger
}

// NewExecutor creates a paper trading executor
func NewExecutor(quotes QuoteSource, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		quotes: quotes,
		logger: logger,
	}
}

// Execute validates the order, fetches the current quote and returns
// the simulated fill. The fill price is the quote price; total is
// price times quantity.
func (e *Executor) Execute(order Order) (*Fill, error) {
	if err := validate(order); err != nil {
		return nil, err
	}

	quote, err := e.quotes.Quote(order.Symbol)
	if err != nil {
		return nil, err
	}

	fill := &Fill{
		OrderID:   uuid.NewString(),
		Success:   true,
		OrderType: order.OrderType,
		Symbol:    order.Symbol,
		Quantity:  order.Quantity,
		Price:     quote.Price,
		Total:     quote.Price * float64(order.Quantity),
		Timestamp: time.Now(),
	}

	e.logger.Info("paper trade executed",
		zap.String("order_id", fill.OrderID),
		zap.String("symbol", fill.Symbol),
		zap.String("side", string(fill.OrderType)),
		zap.Int("quantity", fill.Quantity),
		zap.Float64("price", fill.Price),
	)

	return fill, nil
}

func validate(order Order) error {
	if order.Symbol == "" {
		return core.WrapError(core.ErrOrderInvalid, fmt.Errorf("missing field: symbol"))
	}
	if order.Quantity <= 0 {
		return core.WrapError(core.ErrOrderInvalid, fmt.Errorf("quantity must be positive, got %d", order.Quantity))
	}
	if order.OrderType != core.OrderBuy && order.OrderType != core.OrderSell {
		return core.WrapError(core.ErrOrderInvalid, fmt.Errorf("unknown order type: %q", order.OrderType))
	}
	return nil
}
