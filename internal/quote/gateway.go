package quote

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// TroyOunceGrams is the number of grams in one troy ounce
const TroyOunceGrams = 31.1035

// Provider symbols
const (
	SymbolGoldOunce = "GC=F"
	SymbolSilver    = "SI=F"
	SymbolCopper    = "HG=F"
	SymbolUSDTRY    = "USDTRY=X"
	SymbolEURTRY    = "EURTRY=X"
	SymbolBitcoin   = "BTC-USD"
	SymbolEthereum  = "ETH-USD"
	SymbolBIST100   = "^XU100"
)

// AssetGoldGram is the synthetic TRY-per-gram gold series
const AssetGoldGram = "gold_gram"

// candleSymbols maps public asset keys to provider symbols
var candleSymbols = map[string]string{
	"gold_ons":    SymbolGoldOunce,
	AssetGoldGram: SymbolGoldOunce,
	"usdtry":      SymbolUSDTRY,
	"bitcoin":     SymbolBitcoin,
	"ethereum":    SymbolEthereum,
}

const defaultCandleSymbol = SymbolBitcoin

type window struct {
	lookback string
	interval string
}

const DefaultPeriod = "daily"

var periods = map[string]window{
	"daily":   {"1y", "1d"},
	"weekly":  {"3y", "1wk"},
	"monthly": {"5y", "1mo"},
}

// CandleSymbol resolves an asset key, falling back to bitcoin for unknown keys
func CandleSymbol(asset string) string {
	if s, ok := candleSymbols[asset]; ok {
		return s
	}
	return defaultCandleSymbol
}

func periodWindow(period string) window {
	if w, ok := periods[period]; ok {
		return w
	}
	return periods[DefaultPeriod]
}

// GramPrice converts a USD ounce price into TRY per gram
func GramPrice(ounceUSD, usdTRY float64) float64 {
	return ounceUSD / TroyOunceGrams * usdTRY
}

// DeriveGramGold returns the gram price only when both inputs are known
func DeriveGramGold(ounceUSD, usdTRY *float64) *float64 {
	if ounceUSD == nil || usdTRY == nil {
		return nil
	}
	v := GramPrice(*ounceUSD, *usdTRY)
	return &v
}

// Gateway is the application's view of the quote provider
type Gateway struct {
	provider Provider
	log      zerolog.Logger
}

func NewGateway(provider Provider, log zerolog.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		log:      log.With().Str("component", "quote").Logger(),
	}
}

// GetMarketData fetches the latest close of every symbol concurrently.
// Symbols that fail are left out of the result; the call itself never fails.
func (g *Gateway) GetMarketData(ctx context.Context, symbols []string) map[string]float64 {
	var (
		mu     sync.Mutex
		eg     errgroup.Group
		prices = make(map[string]float64, len(symbols))
	)

	for _, symbol := range symbols {
		symbol := symbol
		eg.Go(func() error {
			price, err := g.provider.LatestClose(ctx, symbol)
			if err != nil {
				g.log.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
				return nil
			}

			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	return prices
}

// Candles is a bar series for one asset key
type Candles struct {
	Asset  string
	Period string
	Bars   []Bar
}

// GetCandles loads the bar series behind an asset key.
// The gram gold series is the ounce series rescaled with the current USD/TRY rate.
func (g *Gateway) GetCandles(ctx context.Context, asset, period string) (*Candles, error) {
	if period == "" {
		period = DefaultPeriod
	}
	w := periodWindow(period)

	bars, err := g.provider.History(ctx, CandleSymbol(asset), w.lookback, w.interval)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	if asset == AssetGoldGram {
		usdTRY, err := g.provider.LatestClose(ctx, SymbolUSDTRY)
		if err != nil {
			g.log.Warn().Err(err).Msg("usd/try unavailable, gram gold candles left in ounce units")
		} else {
			for i := range bars {
				bars[i].Open = GramPrice(bars[i].Open, usdTRY)
				bars[i].High = GramPrice(bars[i].High, usdTRY)
				bars[i].Low = GramPrice(bars[i].Low, usdTRY)
				bars[i].Close = GramPrice(bars[i].Close, usdTRY)
			}
		}
	}

	return &Candles{Asset: asset, Period: period, Bars: bars}, nil
}

// IsNoData reports whether err means the provider had nothing to return
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
