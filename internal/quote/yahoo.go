package quote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/config"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// YahooClient reads the Yahoo Finance chart API
type YahooClient struct {
	http *resty.Client
	log  zerolog.Logger
}

func NewYahooClient(cfg config.QuoteConfig, log zerolog.Logger) *YahooClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &YahooClient{
		http: client,
		log:  log.With().Str("client", "yahoo").Logger(),
	}
}

// Yahoo pads missing points with null, hence the pointers
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// location is the exchange's time zone; daily bars start at exchange-local midnight
func (r *chartResult) location() *time.Location {
	name := r.Meta.ExchangeTimezoneName
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if name == "" && r.Meta.GMTOffset == 0 {
		return time.UTC
	}
	return time.FixedZone(name, r.Meta.GMTOffset)
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (c *YahooClient) chart(ctx context.Context, symbol, lookback, interval string) (*chartResult, error) {
	var result chartResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    lookback,
			"interval": interval,
		}).
		ForceContentType("application/json").
		SetResult(&result).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, symbol, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s: status %d", ErrDataUnavailable, symbol, resp.StatusCode())
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrDataUnavailable, symbol, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	return &result.Chart.Result[0], nil
}

// LatestClose returns the most recent non-null one-minute close of the trading day
func (c *YahooClient) LatestClose(ctx context.Context, symbol string) (float64, error) {
	chart, err := c.chart(ctx, symbol, "1d", "1m")
	if err != nil {
		return 0, err
	}

	closes := chart.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoData, symbol)
}

// History returns the bars for a lookback window, skipping incomplete points
func (c *YahooClient) History(ctx context.Context, symbol, lookback, interval string) ([]Bar, error) {
	chart, err := c.chart(ctx, symbol, lookback, interval)
	if err != nil {
		return nil, err
	}

	q := chart.Indicators.Quote[0]
	loc := chart.location()
	bars := make([]Bar, 0, len(chart.Timestamp))
	for i, ts := range chart.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			continue
		}
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}

		var volume int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}

		bars = append(bars, Bar{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   *q.Open[i],
			High:   *q.High[i],
			Low:    *q.Low[i],
			Close:  *q.Close[i],
			Volume: volume,
		})
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("range", lookback).
		Str("interval", interval).
		Int("count", len(bars)).
		Msg("fetched history")

	return bars, nil
}
