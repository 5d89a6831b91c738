package news

import (
	"context"
	"strings"
	"time"

	"stock-predictor/internal/cache"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/types"
)

// Cached keeps headline sets for a query until the TTL passes.
type Cached struct {
	inner interfaces.NewsSource
	cache cache.BytesCache
	ttl   time.Duration
}

var _ interfaces.NewsSource = (*Cached)(nil)

func NewCached(inner interfaces.NewsSource, c cache.BytesCache, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cache.NewsTTL
	}
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

func (c *Cached) FetchHeadlines(ctx context.Context, q types.NewsQuery) (types.Headlines, error) {
	key := cache.Key("news", string(q.Market), strings.ToLower(q.Name), strings.ToLower(q.Sector))
	return cache.GetOrFetch(ctx, c.cache, key, c.ttl, func(ctx context.Context) (types.Headlines, error) {
		return c.inner.FetchHeadlines(ctx, q)
	})
}
