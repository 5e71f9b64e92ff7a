// Package archive persists completed backtest results to a cold
// storage backend (local filesystem or S3-compatible object store).
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/backtest"
	"github.com/manuraveendrankr-gif/ai-paper-trading/internal/core"
)

// Storage defines the interface for archive backends
type Storage interface {
	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}

// record is the archived form of one backtest run.
type record struct {
	Symbol   string           `json:"symbol"`
	Strategy backtest.Kind    `json:"strategy"`
	Period   string           `json:"period"`
	RunAt    time.Time        `json:"runAt"`
	Result   *backtest.Result `json:"result"`
}

// Recorder writes backtest results to a Storage backend.
type Recorder struct {
	storage Storage
}

// NewRecorder creates a backtest result recorder
func NewRecorder(storage Storage) *Recorder {
	return &Recorder{storage: storage}
}

// Save archives a backtest result under backtests/<symbol>/ and
// returns the storage path.
func (r *Recorder) Save(ctx context.Context, cfg backtest.Config, period string, result *backtest.Result) (string, error) {
	rec := record{
		Symbol:   cfg.Symbol,
		Strategy: cfg.Type,
		Period:   period,
		RunAt:    time.Now().UTC(),
		Result:   result,
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	path := fmt.Sprintf("backtests/%s/%s_%s.json",
		sanitize(cfg.Symbol), rec.RunAt.Format("20060102T150405"), cfg.Type)

	if err := r.storage.Write(ctx, path, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	return path, nil
}

// List returns the archive paths for a symbol.
func (r *Recorder) List(ctx context.Context, symbol string) ([]string, error) {
	paths, err := r.storage.List(ctx, "backtests/"+sanitize(symbol))
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return paths, nil
}

// sanitize makes an index display name usable as a path segment.
func sanitize(symbol string) string {
	out := make([]rune, 0, len(symbol))
	for _, r := range symbol {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
