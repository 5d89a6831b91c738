// Package news fetches the security, sector and market headline sets.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-predictor/internal/api"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/types"
)

const (
	DefaultBaseURL  = "https://news.google.com/rss/search"
	DefaultPerScope = 10
	unknownSource   = "Unknown"
)

type Config struct {
	BaseURL  string        `yaml:"base_url" default:"https://news.google.com/rss/search"`
	PerScope int           `yaml:"per_scope" default:"10" validate:"gt=0,lte=100"`
	Timeout  time.Duration `yaml:"timeout" default:"15s"`
}

// GoogleNews reads the Google News RSS search feed once per scope.
type GoogleNews struct {
	baseURL  string
	perScope int
	timeout  time.Duration
}

var _ interfaces.NewsSource = (*GoogleNews)(nil)

func NewGoogleNews(cfg Config) *GoogleNews {
	g := &GoogleNews{baseURL: cfg.BaseURL, perScope: cfg.PerScope, timeout: cfg.Timeout}
	if g.baseURL == "" {
		g.baseURL = DefaultBaseURL
	}
	if g.perScope <= 0 {
		g.perScope = DefaultPerScope
	}
	if g.timeout <= 0 {
		g.timeout = 15 * time.Second
	}
	return g
}

// locale is the query framing for one market.
type locale struct {
	security, sector, market string
	hl, gl, ceid             string
}

func localeFor(q types.NewsQuery) locale {
	sector := q.Sector
	if sector == "" {
		sector = "General"
	}
	if q.Market == types.MarketUS {
		return locale{
			security: q.Name + " stock NYSE NASDAQ",
			sector:   "US " + sector + " sector stock market",
			market:   "US stock market S&P 500 economy Federal Reserve",
			hl:       "en-US",
			gl:       "US",
			ceid:     "US:en",
		}
	}
	return locale{
		security: q.Name + " NSE stock",
		sector:   "India " + sector + " sector stock market",
		market:   "Indian stock market Nifty economy policy",
		hl:       "en-IN",
		gl:       "IN",
		ceid:     "IN:en",
	}
}

// FetchHeadlines fetches the three scopes independently. A scope that fails
// is logged and left empty; only a done ctx is returned as an error.
func (g *GoogleNews) FetchHeadlines(ctx context.Context, q types.NewsQuery) (types.Headlines, error) {
	loc := localeFor(q)
	out := types.Headlines{
		Security: g.scope(ctx, loc, types.ScopeSecurity, loc.security),
		Sector:   g.scope(ctx, loc, types.ScopeSector, loc.sector),
		Market:   g.scope(ctx, loc, types.ScopeMarket, loc.market),
	}
	if err := ctx.Err(); err != nil {
		return types.Headlines{}, err
	}
	return out, nil
}

func (g *GoogleNews) scope(ctx context.Context, loc locale, scope types.Scope, query string) []types.Headline {
	if ctx.Err() != nil {
		return []types.Headline{}
	}
	items, err := g.search(ctx, loc, query)
	if err != nil {
		logger.WarnWithErr(ctx, "Headline fetch failed", err, "scope", scope, "query", query)
		return []types.Headline{}
	}
	return items
}

// SearchURL builds the RSS search URL for query in the given locale.
func (g *GoogleNews) SearchURL(query string, market types.Market) string {
	loc := localeFor(types.NewsQuery{Market: market})
	return g.searchURL(loc, query)
}

func (g *GoogleNews) searchURL(loc locale, query string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", loc.hl)
	v.Set("gl", loc.gl)
	v.Set("ceid", loc.ceid)
	return g.baseURL + "?" + v.Encode()
}

func (g *GoogleNews) search(ctx context.Context, loc locale, query string) ([]types.Headline, error) {
	headlines := []types.Headline{}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(g.timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("User-Agent", api.BrowserHeaders()["User-Agent"])
	})

	c.OnXML("//item", func(e *colly.XMLElement) {
		if len(headlines) >= g.perScope {
			return
		}
		title := strings.TrimSpace(e.ChildText("title"))
		if title == "" {
			return
		}
		source := strings.TrimSpace(e.ChildText("source"))
		if source == "" {
			source = unknownSource
		}
		headlines = append(headlines, types.Headline{
			Title:     title,
			Published: strings.TrimSpace(e.ChildText("pubDate")),
			Source:    source,
		})
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	target := g.searchURL(loc, query)
	if err := c.Visit(target); err != nil {
		return nil, fmt.Errorf("visit %s: %w", target, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return headlines, nil
}
