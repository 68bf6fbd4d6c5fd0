// Package collector defines the data source interface for daily bar history.
package collector

import (
	"context"
	"regexp"
	"time"

	"github.com/newthinker/prospect/internal/core"
)

// Provider fetches daily OHLCV history for a symbol. Implementations are
// safe for concurrent use.
type Provider interface {
	// Name returns the provider identifier, e.g. "yahoo".
	Name() string

	// DailyHistory returns daily bars for symbol between start and end,
	// inclusive, in ascending date order.
	DailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]core.Bar, error)
}

// validSymbol matches tickers like QQQ, AAPL, BRK-B, 0700.HK
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,10}([.-][A-Za-z0-9]{1,4})?$`)

// ValidateSymbol checks that a symbol has a plausible ticker format.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return core.Wrapf(core.ErrSymbolInvalid, "empty symbol")
	}
	if !validSymbol.MatchString(symbol) {
		return core.Wrapf(core.ErrSymbolInvalid, "%s", symbol)
	}
	return nil
}
