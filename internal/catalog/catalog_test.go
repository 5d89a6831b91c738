package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"stock-predictor/internal/api"
	"stock-predictor/internal/cache"
	"stock-predictor/internal/types"
)

const equityCSV = "SYMBOL,NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE\n" +
	"20MICRONS,20 Microns Limited,EQ,06-OCT-2008,5\n" +
	"GOLDBEES,Nippon India ETF Gold BeES,ETF,19-MAR-2007,1\n" +
	"RELIANCE,Reliance Industries Limited,EQ,29-NOV-1995,10\n" +
	",Missing Symbol,EQ,01-JAN-2000,1\n" +
	"RELIANCE,Reliance Industries Limited,EQ,29-NOV-1995,10\n"

func TestParseNSEEquities(t *testing.T) {
	got, err := ParseNSEEquities(strings.NewReader(equityCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []types.Security{
		{Name: "20 Microns Limited", Ticker: "20MICRONS.NS"},
		{Name: "Reliance Industries Limited", Ticker: "RELIANCE.NS"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	if _, err := ParseNSEEquities(strings.NewReader("A,B\n1,2\n")); err == nil {
		t.Error("expected error for unexpected header")
	}
}

const sp500HTML = `<html><body>
<table class="wikitable"><tr><th>Year</th><th>Change</th></tr><tr><td>2024</td><td>+1</td></tr></table>
<table class="wikitable sortable" id="constituents">
<tbody>
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th></tr>
<tr><td><a href="#">MMM</a></td><td><a href="#">3M</a></td><td>Industrials</td></tr>
<tr><td><a href="#">BRK.B</a></td><td>Berkshire
 Hathaway</td><td>Financials</td></tr>
<tr><td></td><td>Blank</td><td>None</td></tr>
</tbody></table>
</body></html>`

func TestParseWikiTable(t *testing.T) {
	got, err := ParseWikiTable(strings.NewReader(sp500HTML), []string{"Security"}, []string{"Symbol"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", got)
	}
	if got[0].Ticker != "MMM" || got[0].Name != "3M" {
		t.Errorf("unexpected first entry %+v", got[0])
	}
	if got[1].Ticker != "BRK-B" || got[1].Name != "Berkshire Hathaway" {
		t.Errorf("unexpected second entry %+v", got[1])
	}

	if _, err := ParseWikiTable(strings.NewReader(sp500HTML), []string{"Company"}, []string{"Ticker"}); err == nil {
		t.Error("expected error when no table has the columns")
	}
}

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/EQUITY_L.csv", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		fmt.Fprint(w, equityCSV)
	})
	mux.HandleFunc("/sp500", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != wikiUserAgent {
			t.Errorf("expected wiki user agent, got %q", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, sp500HTML)
	})
	mux.HandleFunc("/screener", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("exchange") != "nyse" || r.URL.Query().Get("limit") != "10000" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"data":{"table":{"rows":[
			{"symbol":"BRK/B","name":"Berkshire Hathaway Inc. Class B"},
			{"symbol":" KO ","name":"Coca-Cola Company (The)"},
			{"symbol":"","name":"Nameless"}]}}}`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testRegistry(t *testing.T, hits *int32, c cache.BytesCache) *Registry {
	srv := newServer(t, hits)
	return NewRegistry(api.NewClient(), c, URLs{
		NSEEquities:  srv.URL + "/EQUITY_L.csv",
		SP500:        srv.URL + "/sp500",
		Nasdaq100:    srv.URL + "/broken",
		Dow30:        srv.URL + "/broken",
		NasdaqScreen: srv.URL + "/screener",
	})
}

func TestRegistryLoad(t *testing.T) {
	ctx := context.Background()
	var hits int32
	mem := cache.NewMemory(0)
	defer mem.Close()
	r := testRegistry(t, &hits, mem)

	nifty, err := r.Load(ctx, "Nifty50")
	if err != nil || len(nifty) != 50 {
		t.Fatalf("expected 50 nifty entries, got %d (%v)", len(nifty), err)
	}
	for _, s := range nifty {
		if !strings.HasSuffix(s.Ticker, ".NS") {
			t.Errorf("expected .NS suffix, got %s", s.Ticker)
		}
	}

	for i := 0; i < 2; i++ {
		all, err := r.Load(ctx, "nse-all")
		if err != nil || len(all) != 2 {
			t.Fatalf("expected 2 nse entries, got %v (%v)", all, err)
		}
	}
	if hits != 1 {
		t.Errorf("expected remote catalog cached, got %d hits", hits)
	}

	sp, err := r.Load(ctx, "sp500")
	if err != nil || len(sp) != 2 {
		t.Errorf("expected 2 sp500 entries, got %v (%v)", sp, err)
	}

	nyse, err := r.Load(ctx, "nyse")
	if err != nil || len(nyse) != 2 || nyse[0].Ticker != "BRK-B" || nyse[1].Ticker != "KO" {
		t.Errorf("unexpected nyse entries %v (%v)", nyse, err)
	}
}

func TestRegistryFailures(t *testing.T) {
	var hits int32
	r := testRegistry(t, &hits, nil)

	list, err := r.Load(context.Background(), "nasdaq100")
	if err == nil {
		t.Error("expected error for failing source")
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %v", list)
	}

	list, err = r.Load(context.Background(), "ftse100")
	if !errors.Is(err, ErrUnknownCatalog) || len(list) != 0 {
		t.Errorf("expected ErrUnknownCatalog and empty list, got %v (%v)", list, err)
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry(nil, nil, DefaultURLs())
	infos := r.List()
	if len(infos) != 9 {
		t.Fatalf("expected 9 catalogs, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Errorf("expected sorted names, got %s before %s", infos[i-1].Name, infos[i].Name)
		}
	}
	info, ok := r.Info("SP500")
	if !ok || info.Market != types.MarketUS || !info.Remote {
		t.Errorf("unexpected info %+v", info)
	}

	// built-in lists are copies
	a, _ := r.Load(context.Background(), "us-large-cap")
	a[0].Ticker = "CHANGED"
	b, _ := r.Load(context.Background(), "us-large-cap")
	if b[0].Ticker != "AAPL" {
		t.Errorf("expected built-in list unchanged, got %s", b[0].Ticker)
	}
}
