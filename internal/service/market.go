package service

import (
	"context"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/quote"
)

// Asset is one tile of the market overview
type Asset struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Logo  string `json:"logo"`
}

type assetTile struct {
	key      string
	symbol   string
	name     string
	logo     string
	prefix   string
	suffix   string
	format   string
	fallback string
}

// gold_gram has no symbol of its own; it is derived from gold_ons and usdtry
var marketAssets = []assetTile{
	{key: "gold_ons", symbol: quote.SymbolGoldOunce, name: "Altın Ons", logo: "🟡", prefix: "$", format: "#,###.##", fallback: "$2,652.10"},
	{key: "gold_gram", name: "Gram Altın", logo: "🟨", suffix: " ₺", format: "#,###.##", fallback: "6,226.40 ₺"},
	{key: "usdtry", symbol: quote.SymbolUSDTRY, name: "Dolar/TL", logo: "💲", suffix: " ₺", format: "#,###.##", fallback: "35.80 ₺"},
	{key: "bitcoin", symbol: quote.SymbolBitcoin, name: "Bitcoin", logo: "🟠", prefix: "$", format: "#,###.", fallback: "$95,800"},
	{key: "ethereum", symbol: quote.SymbolEthereum, name: "Ethereum", logo: "🔵", prefix: "$", format: "#,###.##", fallback: "$3,250"},
}

// priceSymbols are the raw series behind /api/prices
var priceSymbols = map[string]string{
	"btc":     quote.SymbolBitcoin,
	"gold":    quote.SymbolGoldOunce,
	"silver":  quote.SymbolSilver,
	"copper":  quote.SymbolCopper,
	"usd_try": quote.SymbolUSDTRY,
	"eur_try": quote.SymbolEURTRY,
	"bist100": quote.SymbolBIST100,
}

type CandleBar struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

type CandleSeries struct {
	Symbol string      `json:"symbol"`
	Period string      `json:"period"`
	Data   []CandleBar `json:"data"`
}

type MarketService struct {
	quotes *quote.Gateway
	now    func() time.Time
	log    zerolog.Logger
}

func NewMarketService(quotes *quote.Gateway, log zerolog.Logger) *MarketService {
	return &MarketService{
		quotes: quotes,
		now:    time.Now,
		log:    log.With().Str("component", "market").Logger(),
	}
}

func formatPrice(tile assetTile, v float64) string {
	return tile.prefix + humanize.FormatFloat(tile.format, v) + tile.suffix
}

func lookup(prices map[string]float64, symbol string) *float64 {
	if v, ok := prices[symbol]; ok {
		return &v
	}
	return nil
}

// MarketData returns the overview tiles. Any tile whose inputs are missing shows its last known figure.
func (s *MarketService) MarketData(ctx context.Context) map[string]Asset {
	prices := s.quotes.GetMarketData(ctx, []string{
		quote.SymbolGoldOunce, quote.SymbolUSDTRY, quote.SymbolBitcoin, quote.SymbolEthereum,
	})

	values := make(map[string]*float64, len(marketAssets))
	for _, tile := range marketAssets {
		if tile.symbol != "" {
			values[tile.key] = lookup(prices, tile.symbol)
		}
	}
	values["gold_gram"] = quote.DeriveGramGold(values["gold_ons"], values["usdtry"])

	result := make(map[string]Asset, len(marketAssets))
	stale := 0
	for _, tile := range marketAssets {
		value := tile.fallback
		if v := values[tile.key]; v != nil {
			value = formatPrice(tile, *v)
		} else {
			stale++
		}
		result[tile.key] = Asset{Name: tile.name, Value: value, Logo: tile.logo}
	}

	if stale > 0 {
		s.log.Warn().Int("stale", stale).Msg("market data served from fallback snapshot")
	}
	return result
}

// Prices returns raw last closes keyed by short name; failed symbols are nil
func (s *MarketService) Prices(ctx context.Context) map[string]interface{} {
	symbols := make([]string, 0, len(priceSymbols))
	for _, symbol := range priceSymbols {
		symbols = append(symbols, symbol)
	}
	prices := s.quotes.GetMarketData(ctx, symbols)

	result := make(map[string]interface{}, len(priceSymbols)+2)
	for key, symbol := range priceSymbols {
		result[key] = lookup(prices, symbol)
	}
	result["gram_altin"] = quote.DeriveGramGold(lookup(prices, quote.SymbolGoldOunce), lookup(prices, quote.SymbolUSDTRY))
	result["timestamp"] = s.now().Format("2006-01-02T15:04:05.000000")

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Candles returns the bar series for an asset key. Unlike MarketData there is no fallback.
func (s *MarketService) Candles(ctx context.Context, asset, period string) (*CandleSeries, error) {
	candles, err := s.quotes.GetCandles(ctx, asset, period)
	if err != nil {
		if quote.IsNoData(err) {
			return nil, ErrNoMarketData
		}
		s.log.Error().Err(err).Str("asset", asset).Msg("candle fetch failed")
		return nil, ErrDataUnavailable
	}

	data := make([]CandleBar, 0, len(candles.Bars))
	for _, b := range candles.Bars {
		data = append(data, CandleBar{
			Time:   b.Time.Format(DateLayout),
			Open:   round2(b.Open),
			High:   round2(b.High),
			Low:    round2(b.Low),
			Close:  round2(b.Close),
			Volume: b.Volume,
		})
	}

	return &CandleSeries{Symbol: asset, Period: candles.Period, Data: data}, nil
}
