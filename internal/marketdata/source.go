package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-predictor/internal/api"
	"stock-predictor/internal/cache"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/types"
)

// Source combines a price-history source with Yahoo statements and profile.
type Source struct {
	prices interfaces.PriceHistorySource
	yahoo  *YahooClient
}

var _ interfaces.MarketData = (*Source)(nil)

// NewSource uses prices for FetchPriceHistory and yahoo for everything else.
// A nil prices falls back to yahoo.
func NewSource(prices interfaces.PriceHistorySource, yahoo *YahooClient) *Source {
	if prices == nil {
		prices = yahoo
	}
	return &Source{prices: prices, yahoo: yahoo}
}

func (s *Source) FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error) {
	return s.prices.FetchPriceHistory(ctx, ticker)
}

func (s *Source) FetchFinancials(ctx context.Context, ticker string) (types.Financials, error) {
	return s.yahoo.FetchFinancials(ctx, ticker)
}

func (s *Source) FetchMetadata(ctx context.Context, ticker string) (types.Metadata, error) {
	return s.yahoo.FetchMetadata(ctx, ticker)
}

type Config struct {
	PriceSource     string        `yaml:"price_source" default:"yahoo" validate:"oneof=yahoo kite"`
	YahooBaseURL    string        `yaml:"yahoo_base_url" default:"https://query2.finance.yahoo.com"`
	RequestsPerSec  float64       `yaml:"requests_per_second" default:"2" validate:"gt=0"`
	Burst           int           `yaml:"burst" default:"4" validate:"gte=1"`
	Timeout         time.Duration `yaml:"timeout" default:"30s"`
	RetryAttempts   int           `yaml:"retry_attempts" default:"3" validate:"gte=1"`
	KiteAPIKey      string        `yaml:"kite_api_key"`
	KiteAccessToken string        `yaml:"kite_access_token"`
	KiteExchange    string        `yaml:"kite_exchange" default:"NSE"`
	LogHTTP         bool          `yaml:"log_http"`
}

// NewFromConfig wires the configured price source, Yahoo client and cache.
// A nil c disables caching.
func NewFromConfig(cfg Config, c cache.BytesCache) (interfaces.MarketData, error) {
	retry := api.DefaultRetryConfig()
	retry.MaxAttempts = cfg.RetryAttempts
	client := api.NewClient(
		api.WithHeaders(api.YahooFinanceHeaders()),
		api.WithTimeout(cfg.Timeout),
		api.WithRateLimit(cfg.RequestsPerSec, cfg.Burst),
		api.WithRetry(retry),
		api.WithLogging(cfg.LogHTTP),
	)

	var opts []YahooOption
	if cfg.YahooBaseURL != "" {
		opts = append(opts, WithYahooBaseURL(cfg.YahooBaseURL))
	}
	yahoo := NewYahooClient(client, opts...)

	var prices interfaces.PriceHistorySource
	switch strings.ToLower(cfg.PriceSource) {
	case "", "yahoo":
	case "kite":
		kite, err := NewKiteHistory(KiteParams{
			APIKey:      cfg.KiteAPIKey,
			AccessToken: cfg.KiteAccessToken,
			Exchange:    cfg.KiteExchange,
		})
		if err != nil {
			return nil, err
		}
		prices = kite
	default:
		return nil, fmt.Errorf("unknown price source %q", cfg.PriceSource)
	}

	var src interfaces.MarketData = NewSource(prices, yahoo)
	if c != nil {
		src = NewCached(src, c, cache.StockDataTTL)
	}
	return src, nil
}
