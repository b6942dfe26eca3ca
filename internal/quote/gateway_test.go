package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finansgold/backend/internal/logger"
)

type fakeProvider struct {
	mu       sync.Mutex
	closes   map[string]float64
	history  map[string][]Bar
	fail     map[string]error
	requests []string
}

func (f *fakeProvider) LatestClose(_ context.Context, symbol string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, "close:"+symbol)
	if err, ok := f.fail[symbol]; ok {
		return 0, err
	}
	v, ok := f.closes[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return v, nil
}

func (f *fakeProvider) History(_ context.Context, symbol, lookback, interval string) ([]Bar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, "history:"+symbol+":"+lookback+":"+interval)
	if err, ok := f.fail["history:"+symbol]; ok {
		return nil, err
	}
	bars := make([]Bar, len(f.history[symbol]))
	copy(bars, f.history[symbol])
	return bars, nil
}

func TestDeriveGramGold(t *testing.T) {
	ounce, fx := 2652.10, 35.80

	got := DeriveGramGold(&ounce, &fx)
	require.NotNil(t, got)
	assert.InDelta(t, 3052.55, *got, 0.01)
	assert.InDelta(t, (ounce/31.1035)*fx, *got, 1e-9)

	assert.Nil(t, DeriveGramGold(nil, &fx))
	assert.Nil(t, DeriveGramGold(&ounce, nil))
	assert.Nil(t, DeriveGramGold(nil, nil))
}

func TestGetMarketData_PartialFailure(t *testing.T) {
	p := &fakeProvider{
		closes: map[string]float64{SymbolGoldOunce: 2650, SymbolBitcoin: 95000},
		fail:   map[string]error{SymbolUSDTRY: ErrDataUnavailable},
	}
	g := NewGateway(p, logger.Nop())

	got := g.GetMarketData(context.Background(), []string{SymbolGoldOunce, SymbolUSDTRY, SymbolBitcoin, SymbolEthereum})

	assert.Equal(t, map[string]float64{SymbolGoldOunce: 2650, SymbolBitcoin: 95000}, got)
}

func TestCandleSymbol(t *testing.T) {
	assert.Equal(t, SymbolGoldOunce, CandleSymbol("gold_ons"))
	assert.Equal(t, SymbolGoldOunce, CandleSymbol("gold_gram"))
	assert.Equal(t, SymbolUSDTRY, CandleSymbol("usdtry"))
	assert.Equal(t, SymbolEthereum, CandleSymbol("ethereum"))
	assert.Equal(t, SymbolBitcoin, CandleSymbol("dogecoin"))
}

func TestGetCandles_Periods(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	p := &fakeProvider{history: map[string][]Bar{
		SymbolBitcoin: {{Time: day, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}},
	}}
	g := NewGateway(p, logger.Nop())
	ctx := context.Background()

	tests := []struct {
		period     string
		wantPeriod string
		wantReq    string
	}{
		{"daily", "daily", "history:BTC-USD:1y:1d"},
		{"weekly", "weekly", "history:BTC-USD:3y:1wk"},
		{"monthly", "monthly", "history:BTC-USD:5y:1mo"},
		{"", "daily", "history:BTC-USD:1y:1d"},
		{"hourly", "hourly", "history:BTC-USD:1y:1d"},
	}

	for _, tt := range tests {
		t.Run(tt.wantPeriod+tt.period, func(t *testing.T) {
			p.requests = nil
			c, err := g.GetCandles(ctx, "unknown-asset", tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPeriod, c.Period)
			assert.Equal(t, []string{tt.wantReq}, p.requests)
			assert.Len(t, c.Bars, 1)
		})
	}
}

func TestGetCandles_GramGoldRescaled(t *testing.T) {
	p := &fakeProvider{
		closes: map[string]float64{SymbolUSDTRY: 35.80},
		history: map[string][]Bar{
			SymbolGoldOunce: {{Open: 2600, High: 2700, Low: 2500, Close: 2652.10}},
		},
	}
	g := NewGateway(p, logger.Nop())

	c, err := g.GetCandles(context.Background(), AssetGoldGram, "daily")
	require.NoError(t, err)
	require.Len(t, c.Bars, 1)
	assert.InDelta(t, GramPrice(2652.10, 35.80), c.Bars[0].Close, 1e-9)
	assert.InDelta(t, GramPrice(2500, 35.80), c.Bars[0].Low, 1e-9)

	// ounce series is untouched
	c, err = g.GetCandles(context.Background(), "gold_ons", "daily")
	require.NoError(t, err)
	assert.Equal(t, 2652.10, c.Bars[0].Close)
}

func TestGetCandles_GramGoldWithoutFX(t *testing.T) {
	p := &fakeProvider{
		fail:    map[string]error{SymbolUSDTRY: ErrDataUnavailable},
		history: map[string][]Bar{SymbolGoldOunce: {{Close: 2652.10}}},
	}
	g := NewGateway(p, logger.Nop())

	c, err := g.GetCandles(context.Background(), AssetGoldGram, "daily")
	require.NoError(t, err)
	assert.Equal(t, 2652.10, c.Bars[0].Close)
}

func TestGetCandles_Errors(t *testing.T) {
	p := &fakeProvider{
		fail: map[string]error{"history:" + SymbolEthereum: fmt.Errorf("%w: boom", ErrDataUnavailable)},
	}
	g := NewGateway(p, logger.Nop())
	ctx := context.Background()

	_, err := g.GetCandles(ctx, "bitcoin", "daily")
	assert.True(t, IsNoData(err))

	_, err = g.GetCandles(ctx, "ethereum", "daily")
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.False(t, IsNoData(err))
}
