// Package marketdata fetches price history, statements and company profiles.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"stock-predictor/internal/api"
	"stock-predictor/internal/types"
)

const (
	DefaultYahooBaseURL   = "https://query2.finance.yahoo.com"
	DefaultYahooCookieURL = "https://fc.yahoo.com"
)

// Line items requested from the fundamentals timeseries endpoint.
var (
	incomeTypes = []string{
		"TotalRevenue", "GrossProfit", "OperatingIncome", "EBIT",
		"NetIncome", "NetIncomeCommonStockholders",
	}
	balanceTypes = []string{
		"TotalAssets", "CurrentAssets", "CurrentLiabilities", "TotalDebt",
		"LongTermDebt", "StockholdersEquity", "CommonStockEquity",
		"OrdinarySharesNumber", "ShareIssued",
	}
	cashflowTypes = []string{"OperatingCashFlow", "FreeCashFlow"}

	quoteSummaryModules = []string{
		"price", "summaryProfile", "summaryDetail", "financialData", "defaultKeyStatistics",
	}
)

// YahooClient reads the public Yahoo Finance JSON endpoints.
type YahooClient struct {
	client    *api.Client
	baseURL   string
	cookieURL string
	now       func() time.Time

	mu    sync.Mutex
	crumb string
}

type YahooOption func(*YahooClient)

// WithYahooBaseURL points every endpoint at baseURL (tests use an httptest server).
func WithYahooBaseURL(baseURL string) YahooOption {
	return func(y *YahooClient) {
		y.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCookieURL sets the page visited to obtain the session cookie.
func WithCookieURL(u string) YahooOption {
	return func(y *YahooClient) { y.cookieURL = u }
}

func NewYahooClient(client *api.Client, opts ...YahooOption) *YahooClient {
	if client == nil {
		client = api.NewClient(
			api.WithHeaders(api.YahooFinanceHeaders()),
			api.WithRateLimit(2, 4),
			api.WithRetry(api.DefaultRetryConfig()),
		)
	}
	y := &YahooClient{
		client:    client,
		baseURL:   DefaultYahooBaseURL,
		cookieURL: DefaultYahooCookieURL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *yahooError) Error() string {
	return fmt.Sprintf("yahoo: %s: %s", e.Code, e.Description)
}

// FetchPriceHistory returns one year of daily closes, oldest first. Days
// without a close are dropped.
func (y *YahooClient) FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1y&interval=1d", y.baseURL, url.PathEscape(ticker))

	var resp chartResponse
	if err := y.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		return nil, resp.Chart.Error
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", ticker)
	}

	res := resp.Chart.Result[0]
	closes := res.Indicators.Quote[0].Close
	series := make(types.PriceSeries, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil || math.IsNaN(*closes[i]) {
			continue
		}
		series = append(series, types.PricePoint{Date: time.Unix(ts, 0).UTC(), Close: *closes[i]})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("chart %s: no price data", ticker)
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *yahooError                  `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Type []string `json:"type"`
}

type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue *struct {
		Raw *float64 `json:"raw"`
	} `json:"reportedValue"`
}

// FetchFinancials returns quarterly and annual income and balance sheets
// plus the annual cash flow statement. Labels are spaced ("Total Revenue").
func (y *YahooClient) FetchFinancials(ctx context.Context, ticker string) (types.Financials, error) {
	var kinds []string
	for _, t := range append(append([]string{}, incomeTypes...), balanceTypes...) {
		kinds = append(kinds, "quarterly"+t, "annual"+t)
	}
	for _, t := range cashflowTypes {
		kinds = append(kinds, "annual"+t)
	}

	now := y.now()
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("type", strings.Join(kinds, ","))
	q.Set("period1", strconv.FormatInt(now.AddDate(-5, 0, 0).Unix(), 10))
	q.Set("period2", strconv.FormatInt(now.Unix(), 10))
	u := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s", y.baseURL, url.PathEscape(ticker), q.Encode())

	var resp timeseriesResponse
	if err := y.client.GetJSON(ctx, u, &resp); err != nil {
		return types.Financials{}, fmt.Errorf("timeseries %s: %w", ticker, err)
	}
	if resp.Timeseries.Error != nil {
		return types.Financials{}, resp.Timeseries.Error
	}
	return parseTimeseries(resp.Timeseries.Result), nil
}

// parseTimeseries groups line items into statement tables. Every row of a
// table shares the table's period axis, the union of the reported dates
// most recent first, and a period a line item did not report is NaN.
func parseTimeseries(results []map[string]json.RawMessage) types.Financials {
	income := setOf(incomeTypes)
	balance := setOf(balanceTypes)
	cashflow := setOf(cashflowTypes)

	const (
		quarterlyIncome = iota
		quarterlyBalance
		annualIncome
		annualBalance
		annualCashflow
		tableCount
	)
	var collected [tableCount]map[string]map[string]float64

	for _, r := range results {
		var meta timeseriesMeta
		if err := json.Unmarshal(r["meta"], &meta); err != nil || len(meta.Type) == 0 {
			continue
		}
		kind := meta.Type[0]
		var points []*timeseriesPoint
		if err := json.Unmarshal(r[kind], &points); err != nil {
			continue
		}
		byDate := datedValues(points)
		if len(byDate) == 0 {
			continue
		}

		table := -1
		var item string
		switch {
		case strings.HasPrefix(kind, "quarterly"):
			item = strings.TrimPrefix(kind, "quarterly")
			if income[item] {
				table = quarterlyIncome
			} else if balance[item] {
				table = quarterlyBalance
			}
		case strings.HasPrefix(kind, "annual"):
			item = strings.TrimPrefix(kind, "annual")
			switch {
			case income[item]:
				table = annualIncome
			case balance[item]:
				table = annualBalance
			case cashflow[item]:
				table = annualCashflow
			}
		}
		if table < 0 {
			continue
		}
		if collected[table] == nil {
			collected[table] = make(map[string]map[string]float64)
		}
		collected[table][SpaceCamel(item)] = byDate
	}

	return types.Financials{
		QuarterlyIncome:  alignPeriods(collected[quarterlyIncome]),
		QuarterlyBalance: alignPeriods(collected[quarterlyBalance]),
		AnnualIncome:     alignPeriods(collected[annualIncome]),
		AnnualBalance:    alignPeriods(collected[annualBalance]),
		Cashflow:         alignPeriods(collected[annualCashflow]),
	}
}

// datedValues keys reported values by asOfDate. Null entries and entries
// without a reported value are left out.
func datedValues(points []*timeseriesPoint) map[string]float64 {
	out := make(map[string]float64, len(points))
	for _, p := range points {
		if p == nil || p.AsOfDate == "" || p.ReportedValue == nil || p.ReportedValue.Raw == nil {
			continue
		}
		out[p.AsOfDate] = *p.ReportedValue.Raw
	}
	return out
}

func alignPeriods(rows map[string]map[string]float64) types.StatementTable {
	table := types.StatementTable{}
	seen := make(map[string]bool)
	var dates []string
	for _, byDate := range rows {
		for d := range byDate {
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}
	// ISO dates sort lexically
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for label, byDate := range rows {
		row := make([]float64, len(dates))
		for i, d := range dates {
			v, ok := byDate[d]
			if !ok {
				v = math.NaN()
			}
			row[i] = v
		}
		table[label] = row
	}
	return table
}

// SpaceCamel turns "TotalRevenue" into "Total Revenue" and keeps acronyms
// such as "EBIT" whole.
func SpaceCamel(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if i > 0 && unicode.IsUpper(c) {
			prev := r[i-1]
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(c)
	}
	return b.String()
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]map[string]json.RawMessage `json:"result"`
		Error  *yahooError                              `json:"error"`
	} `json:"quoteSummary"`
}

// FetchMetadata returns the flattened company profile. Yahoo requires a
// session cookie and crumb; an expired crumb is refreshed once.
func (y *YahooClient) FetchMetadata(ctx context.Context, ticker string) (types.Metadata, error) {
	resp, err := y.quoteSummary(ctx, ticker, false)
	var se *api.StatusError
	if errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
		resp, err = y.quoteSummary(ctx, ticker, true)
	}
	if err != nil {
		return nil, fmt.Errorf("quoteSummary %s: %w", ticker, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, resp.QuoteSummary.Error
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary %s: empty result", ticker)
	}
	return flattenModules(resp.QuoteSummary.Result[0]), nil
}

func (y *YahooClient) quoteSummary(ctx context.Context, ticker string, refresh bool) (*quoteSummaryResponse, error) {
	crumb, err := y.getCrumb(ctx, refresh)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("modules", strings.Join(quoteSummaryModules, ","))
	q.Set("crumb", crumb)
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", y.baseURL, url.PathEscape(ticker), q.Encode())

	var resp quoteSummaryResponse
	if err := y.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (y *YahooClient) getCrumb(ctx context.Context, refresh bool) (string, error) {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.crumb != "" && !refresh {
		return y.crumb, nil
	}
	// fc.yahoo.com answers 404 but still sets the session cookie
	if y.cookieURL != "" {
		_, _ = y.client.GET(ctx, y.cookieURL)
	}
	resp, err := y.client.GET(ctx, y.baseURL+"/v1/test/getcrumb", map[string]string{"Accept": "text/plain"})
	if err != nil {
		return "", fmt.Errorf("fetch crumb: %w", err)
	}
	crumb := strings.TrimSpace(resp.String())
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", fmt.Errorf("fetch crumb: unexpected body %q", crumb)
	}
	y.crumb = crumb
	return crumb, nil
}

// flattenModules merges quoteSummary modules into one mapping. Formatted
// numbers ({"raw":..,"fmt":..}) collapse to raw; the first module that
// carries a key wins.
func flattenModules(modules map[string]map[string]json.RawMessage) types.Metadata {
	meta := types.Metadata{}
	for _, name := range quoteSummaryModules {
		for key, raw := range modules[name] {
			if _, seen := meta[key]; seen {
				continue
			}
			if v, ok := flatValue(raw); ok {
				meta[key] = v
			}
		}
	}
	return meta
}

func flatValue(raw json.RawMessage) (any, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		if r, ok := t["raw"]; ok && r != nil {
			return r, true
		}
		return nil, false
	case []any:
		return nil, false
	default:
		return t, true
	}
}

func setOf(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
