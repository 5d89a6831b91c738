package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"stock-predictor/internal/cache"
	"stock-predictor/internal/types"
)

func rss(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>feed</title>` +
		strings.Join(items, "") + `</channel></rss>`
}

func item(title, source string) string {
	src := ""
	if source != "" {
		src = fmt.Sprintf(`<source url="https://example.com">%s</source>`, source)
	}
	return fmt.Sprintf(`<item><title>%s</title><pubDate>Mon, 04 Mar 2024 08:00:00 GMT</pubDate>%s</item>`, title, src)
}

type feedServer struct {
	mu      sync.Mutex
	queries []url.Values
}

func (f *feedServer) handler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	switch {
	case strings.Contains(q.Get("q"), "sector"):
		w.WriteHeader(http.StatusServiceUnavailable)
	case strings.Contains(q.Get("q"), "stock market"):
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		var items []string
		for i := 0; i < 15; i++ {
			items = append(items, item(fmt.Sprintf("Market item %d", i), "Mint"))
		}
		fmt.Fprint(w, rss(items...))
	default:
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		fmt.Fprint(w, rss(item("Infosys wins large deal", "Reuters"), item("Infosys shares slip", ""), item("", "Blank")))
	}
}

func TestFetchHeadlines(t *testing.T) {
	fs := &feedServer{}
	srv := httptest.NewServer(http.HandlerFunc(fs.handler))
	defer srv.Close()

	g := NewGoogleNews(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	h, err := g.FetchHeadlines(context.Background(), types.NewsQuery{Name: "Infosys", Sector: "Technology", Market: types.MarketIndia})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(h.Security) != 2 {
		t.Fatalf("expected 2 security headlines, got %d", len(h.Security))
	}
	if h.Security[0].Source != "Reuters" || h.Security[1].Source != "Unknown" {
		t.Errorf("unexpected sources %q %q", h.Security[0].Source, h.Security[1].Source)
	}
	if h.Security[0].Published == "" {
		t.Error("expected published date")
	}
	if h.Sector == nil || len(h.Sector) != 0 {
		t.Errorf("expected empty sector scope after failure, got %v", h.Sector)
	}
	if len(h.Market) != DefaultPerScope {
		t.Errorf("expected market scope capped at %d, got %d", DefaultPerScope, len(h.Market))
	}

	if len(fs.queries) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(fs.queries))
	}
	want := []string{"Infosys NSE stock", "India Technology sector stock market", "Indian stock market Nifty economy policy"}
	for i, q := range fs.queries {
		if q.Get("q") != want[i] {
			t.Errorf("query %d: expected %q, got %q", i, want[i], q.Get("q"))
		}
		if q.Get("hl") != "en-IN" || q.Get("gl") != "IN" || q.Get("ceid") != "IN:en" {
			t.Errorf("query %d: unexpected locale %v", i, q)
		}
	}
}

func TestSearchURLUS(t *testing.T) {
	g := NewGoogleNews(Config{})
	u, err := url.Parse(g.SearchURL("Apple stock NYSE NASDAQ", types.MarketUS))
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "news.google.com" || u.Query().Get("ceid") != "US:en" || u.Query().Get("q") != "Apple stock NYSE NASDAQ" {
		t.Errorf("unexpected url %s", u)
	}

	loc := localeFor(types.NewsQuery{Name: "Apple", Market: types.MarketUS})
	if loc.sector != "US General sector stock market" {
		t.Errorf("expected General sector fallback, got %q", loc.sector)
	}
	if loc.market != "US stock market S&P 500 economy Federal Reserve" {
		t.Errorf("unexpected market query %q", loc.market)
	}
}

func TestFetchHeadlinesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGoogleNews(Config{BaseURL: "http://127.0.0.1:1"}).FetchHeadlines(ctx, types.NewsQuery{Name: "X"}); err == nil {
		t.Error("expected context error")
	}
}

type countingNews struct{ calls int }

func (c *countingNews) FetchHeadlines(ctx context.Context, q types.NewsQuery) (types.Headlines, error) {
	c.calls++
	return types.Headlines{Security: []types.Headline{{Title: q.Name + " rallies", Source: "Mint"}}}, nil
}

func TestCachedHeadlines(t *testing.T) {
	mem := cache.NewMemory(0)
	defer mem.Close()
	inner := &countingNews{}
	c := NewCached(inner, mem, 0)

	q := types.NewsQuery{Name: "Infosys", Sector: "Technology", Market: types.MarketIndia}
	for i := 0; i < 2; i++ {
		h, err := c.FetchHeadlines(context.Background(), q)
		if err != nil {
			t.Fatal(err)
		}
		if len(h.Security) != 1 || h.Security[0].Title != "Infosys rallies" {
			t.Errorf("unexpected headlines %+v", h)
		}
	}
	c.FetchHeadlines(context.Background(), types.NewsQuery{Name: "TCS", Market: types.MarketIndia})
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", inner.calls)
	}
}
