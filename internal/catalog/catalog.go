// Package catalog resolves named lists of securities.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"stock-predictor/internal/api"
	"stock-predictor/internal/cache"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/types"
)

// ErrUnknownCatalog is returned by Load for a name the registry does not know.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Fetcher loads the entries of one catalog.
type Fetcher func(ctx context.Context) ([]types.Security, error)

// Info describes a registered catalog.
type Info struct {
	Name        string       `json:"name"`
	Market      types.Market `json:"market"`
	Description string       `json:"description"`
	Remote      bool         `json:"remote"`
}

type entry struct {
	info  Info
	fetch Fetcher
}

// URLs of the remote catalog sources.
type URLs struct {
	NSEEquities  string `yaml:"nse_equities" default:"https://nsearchives.nseindia.com/content/equities/EQUITY_L.csv"`
	SP500        string `yaml:"sp500" default:"https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"`
	Nasdaq100    string `yaml:"nasdaq100" default:"https://en.wikipedia.org/wiki/Nasdaq-100"`
	Dow30        string `yaml:"dow30" default:"https://en.wikipedia.org/wiki/Dow_Jones_Industrial_Average"`
	NasdaqScreen string `yaml:"nasdaq_screener" default:"https://api.nasdaq.com/api/screener/stocks"`
}

// DefaultURLs returns the public source locations.
func DefaultURLs() URLs {
	return URLs{
		NSEEquities:  "https://nsearchives.nseindia.com/content/equities/EQUITY_L.csv",
		SP500:        "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
		Nasdaq100:    "https://en.wikipedia.org/wiki/Nasdaq-100",
		Dow30:        "https://en.wikipedia.org/wiki/Dow_Jones_Industrial_Average",
		NasdaqScreen: "https://api.nasdaq.com/api/screener/stocks",
	}
}

// Registry maps catalog names to fetchers. Remote catalogs are cached for a day.
type Registry struct {
	entries map[string]entry
	cache   cache.BytesCache
}

var _ interfaces.Catalog = (*Registry)(nil)

// NewRegistry registers the built-in and remote catalogs. A nil client gets
// a default one; a nil cache disables caching.
func NewRegistry(client *api.Client, c cache.BytesCache, urls URLs) *Registry {
	if client == nil {
		client = api.NewClient(api.WithRetry(api.DefaultRetryConfig()))
	}
	r := &Registry{entries: make(map[string]entry), cache: c}

	for _, b := range builtins {
		list := b.list
		r.Register(Info{Name: b.name, Market: b.market, Description: b.description}, func(context.Context) ([]types.Security, error) {
			return append([]types.Security(nil), list...), nil
		})
	}

	nse := &NSE{client: client, url: urls.NSEEquities}
	r.Register(Info{Name: "nse-all", Market: types.MarketIndia, Description: "Every NSE equity (EQ series)", Remote: true}, nse.Fetch)

	wiki := &Wikipedia{client: client}
	r.Register(Info{Name: "sp500", Market: types.MarketUS, Description: "S&P 500 constituents", Remote: true},
		wiki.Table(urls.SP500, []string{"Security"}, []string{"Symbol"}))
	r.Register(Info{Name: "nasdaq100", Market: types.MarketUS, Description: "NASDAQ-100 constituents", Remote: true},
		wiki.Table(urls.Nasdaq100, []string{"Company"}, []string{"Ticker", "Symbol"}))
	r.Register(Info{Name: "dow30", Market: types.MarketUS, Description: "Dow Jones Industrial Average constituents", Remote: true},
		wiki.Table(urls.Dow30, []string{"Company"}, []string{"Symbol"}))

	screener := &NasdaqScreener{client: client, url: urls.NasdaqScreen}
	r.Register(Info{Name: "nyse", Market: types.MarketUS, Description: "Every NYSE listing", Remote: true}, screener.Exchange("nyse"))
	r.Register(Info{Name: "nasdaq", Market: types.MarketUS, Description: "Every NASDAQ listing", Remote: true}, screener.Exchange("nasdaq"))

	return r
}

// Register adds or replaces a catalog.
func (r *Registry) Register(info Info, fetch Fetcher) {
	info.Name = normalize(info.Name)
	r.entries[info.Name] = entry{info: info, fetch: fetch}
}

// List returns every catalog sorted by name.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Info returns the description of name.
func (r *Registry) Info(name string) (Info, bool) {
	e, ok := r.entries[normalize(name)]
	return e.info, ok
}

// Load returns the entries of name. A remote failure yields an empty list
// together with the error.
func (r *Registry) Load(ctx context.Context, name string) ([]types.Security, error) {
	e, ok := r.entries[normalize(name)]
	if !ok {
		return []types.Security{}, fmt.Errorf("%w: %s", ErrUnknownCatalog, name)
	}
	if !e.info.Remote {
		return e.fetch(ctx)
	}

	timer := logger.StartOperation(ctx, "catalog.load", "catalog", e.info.Name)
	list, err := cache.GetOrFetch(ctx, r.cache, cache.Key("catalog", e.info.Name), cache.CatalogTTL, func(ctx context.Context) ([]types.Security, error) {
		list, err := e.fetch(ctx)
		if err == nil && len(list) == 0 {
			err = fmt.Errorf("catalog %s: source returned no entries", e.info.Name)
		}
		return list, err
	})
	if err != nil {
		timer.EndWithError(err)
		return []types.Security{}, err
	}
	timer.End("entries", len(list))
	return list, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// dedupe drops entries whose ticker was already seen, keeping source order.
func dedupe(in []types.Security) []types.Security {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s.Ticker == "" || seen[s.Ticker] {
			continue
		}
		seen[s.Ticker] = true
		out = append(out, s)
	}
	return out
}
