package marketdata

import (
	"context"
	"time"

	"stock-predictor/internal/cache"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/types"
)

// Cached serves repeated lookups for the same ticker from a byte cache.
type Cached struct {
	inner interfaces.MarketData
	cache cache.BytesCache
	ttl   time.Duration
}

var _ interfaces.MarketData = (*Cached)(nil)

func NewCached(inner interfaces.MarketData, c cache.BytesCache, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cache.StockDataTTL
	}
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

func (c *Cached) FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error) {
	return cache.GetOrFetch(ctx, c.cache, cache.Key("prices", ticker), c.ttl,
		func(ctx context.Context) (types.PriceSeries, error) {
			return c.inner.FetchPriceHistory(ctx, ticker)
		})
}

func (c *Cached) FetchFinancials(ctx context.Context, ticker string) (types.Financials, error) {
	return cache.GetOrFetch(ctx, c.cache, cache.Key("financials", ticker), c.ttl,
		func(ctx context.Context) (types.Financials, error) {
			return c.inner.FetchFinancials(ctx, ticker)
		})
}

func (c *Cached) FetchMetadata(ctx context.Context, ticker string) (types.Metadata, error) {
	return cache.GetOrFetch(ctx, c.cache, cache.Key("metadata", ticker), c.ttl,
		func(ctx context.Context) (types.Metadata, error) {
			return c.inner.FetchMetadata(ctx, ticker)
		})
}
