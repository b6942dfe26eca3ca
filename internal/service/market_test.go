package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finansgold/backend/internal/logger"
	"github.com/finansgold/backend/internal/quote"
)

type stubProvider struct {
	closes  map[string]float64
	bars    []quote.Bar
	histErr error
}

func (s *stubProvider) LatestClose(_ context.Context, symbol string) (float64, error) {
	if v, ok := s.closes[symbol]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s", quote.ErrDataUnavailable, symbol)
}

func (s *stubProvider) History(context.Context, string, string, string) ([]quote.Bar, error) {
	if s.histErr != nil {
		return nil, s.histErr
	}
	out := make([]quote.Bar, len(s.bars))
	copy(out, s.bars)
	return out, nil
}

func newMarket(p quote.Provider) *MarketService {
	return NewMarketService(quote.NewGateway(p, logger.Nop()), logger.Nop())
}

func TestMarketData_Live(t *testing.T) {
	m := newMarket(&stubProvider{closes: map[string]float64{
		quote.SymbolGoldOunce: 2652.10,
		quote.SymbolUSDTRY:    35.80,
		quote.SymbolBitcoin:   95800.4,
		quote.SymbolEthereum:  3250,
	}})

	got := m.MarketData(context.Background())

	assert.Equal(t, Asset{Name: "Altın Ons", Value: "$2,652.10", Logo: "🟡"}, got["gold_ons"])
	assert.Equal(t, Asset{Name: "Gram Altın", Value: "3,052.56 ₺", Logo: "🟨"}, got["gold_gram"])
	assert.Equal(t, Asset{Name: "Dolar/TL", Value: "35.80 ₺", Logo: "💲"}, got["usdtry"])
	assert.Equal(t, Asset{Name: "Bitcoin", Value: "$95,800", Logo: "🟠"}, got["bitcoin"])
	assert.Equal(t, Asset{Name: "Ethereum", Value: "$3,250.00", Logo: "🔵"}, got["ethereum"])
}

func TestMarketData_Fallback(t *testing.T) {
	m := newMarket(&stubProvider{})

	got := m.MarketData(context.Background())

	assert.Equal(t, map[string]Asset{
		"gold_ons":  {Name: "Altın Ons", Value: "$2,652.10", Logo: "🟡"},
		"gold_gram": {Name: "Gram Altın", Value: "6,226.40 ₺", Logo: "🟨"},
		"usdtry":    {Name: "Dolar/TL", Value: "35.80 ₺", Logo: "💲"},
		"bitcoin":   {Name: "Bitcoin", Value: "$95,800", Logo: "🟠"},
		"ethereum":  {Name: "Ethereum", Value: "$3,250", Logo: "🔵"},
	}, got)
}

func TestMarketData_PartialFallback(t *testing.T) {
	m := newMarket(&stubProvider{closes: map[string]float64{
		quote.SymbolGoldOunce: 2700,
		quote.SymbolBitcoin:   100000,
	}})

	got := m.MarketData(context.Background())

	assert.Equal(t, "$2,700.00", got["gold_ons"].Value)
	assert.Equal(t, "6,226.40 ₺", got["gold_gram"].Value)
	assert.Equal(t, "35.80 ₺", got["usdtry"].Value)
	assert.Equal(t, "$100,000", got["bitcoin"].Value)
	assert.Equal(t, "$3,250", got["ethereum"].Value)
}

func TestPrices(t *testing.T) {
	m := newMarket(&stubProvider{closes: map[string]float64{
		quote.SymbolGoldOunce: 2652.10,
		quote.SymbolUSDTRY:    35.80,
		quote.SymbolSilver:    30.5,
	}})
	m.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	got := m.Prices(context.Background())

	gold, ok := got["gold"].(*float64)
	require.True(t, ok)
	require.NotNil(t, gold)
	assert.Equal(t, 2652.10, *gold)

	btc, ok := got["btc"].(*float64)
	require.True(t, ok)
	assert.Nil(t, btc)

	gram, ok := got["gram_altin"].(*float64)
	require.True(t, ok)
	require.NotNil(t, gram)
	assert.InDelta(t, 3052.556, *gram, 0.001)

	assert.Equal(t, "2025-01-02T03:04:05.000000", got["timestamp"])
	for _, key := range []string{"btc", "gold", "silver", "copper", "usd_try", "eur_try", "bist100", "gram_altin", "timestamp"} {
		assert.Contains(t, got, key)
	}
}

func TestPrices_NoGramWithoutFX(t *testing.T) {
	m := newMarket(&stubProvider{closes: map[string]float64{quote.SymbolGoldOunce: 2652.10}})

	gram := m.Prices(context.Background())["gram_altin"].(*float64)
	assert.Nil(t, gram)
}

func TestCandles(t *testing.T) {
	day := time.Date(2025, 1, 2, 14, 30, 0, 0, time.UTC)
	m := newMarket(&stubProvider{bars: []quote.Bar{
		{Time: day, Open: 1.234, High: 2.346, Low: 0.126, Close: 1.999, Volume: 42},
	}})

	got, err := m.Candles(context.Background(), "bitcoin", "weekly")
	require.NoError(t, err)

	assert.Equal(t, "bitcoin", got.Symbol)
	assert.Equal(t, "weekly", got.Period)
	assert.Equal(t, []CandleBar{{Time: "2025-01-02", Open: 1.23, High: 2.35, Low: 0.13, Close: 2, Volume: 42}}, got.Data)
}

func TestCandles_ExchangeLocalDate(t *testing.T) {
	london := time.FixedZone("BST", 3600)
	m := newMarket(&stubProvider{bars: []quote.Bar{
		{Time: time.Unix(1717369200, 0).In(london), Open: 38.1, High: 38.4, Low: 37.9, Close: 38.2},
	}})

	got, err := m.Candles(context.Background(), "usdtry", "daily")
	require.NoError(t, err)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "2024-06-03", got.Data[0].Time)
}

func TestCandles_Errors(t *testing.T) {
	_, err := newMarket(&stubProvider{}).Candles(context.Background(), "bitcoin", "daily")
	assert.ErrorIs(t, err, ErrNoMarketData)
	status, _ := StatusOf(err)
	assert.Equal(t, http.StatusNotFound, status)

	_, err = newMarket(&stubProvider{histErr: quote.ErrDataUnavailable}).Candles(context.Background(), "bitcoin", "daily")
	assert.ErrorIs(t, err, ErrDataUnavailable)
	status, _ = StatusOf(err)
	assert.Equal(t, http.StatusInternalServerError, status)
}
