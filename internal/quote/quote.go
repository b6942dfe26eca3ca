package quote

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDataUnavailable means the provider could not be reached or answered with an error
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrNoData means the provider answered but had nothing for the symbol
	ErrNoData = errors.New("no market data for symbol")
)

// Bar is one OHLCV candle. Time carries the exchange's location.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Provider fetches raw quotes from an external market-data source
type Provider interface {
	LatestClose(ctx context.Context, symbol string) (float64, error)
	History(ctx context.Context, symbol, lookback, interval string) ([]Bar, error)
}
