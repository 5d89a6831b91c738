package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Market selects how upstream queries are framed (news locale, ticker suffixes).
type Market string

const (
	MarketIndia Market = "India"
	MarketUS    Market = "US"
)

// ParseMarket accepts "india", "in", "nse", "us", "usa" in any case.
func ParseMarket(s string) (Market, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "india", "in", "nse":
		return MarketIndia, nil
	case "us", "usa", "nyse", "nasdaq":
		return MarketUS, nil
	default:
		return "", fmt.Errorf("unknown market %q: must be India or US", s)
	}
}

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is ordered oldest first.
type PriceSeries []PricePoint

// Closes returns the closing prices in chronological order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// StatementTable maps a line-item label to its period values, most recent
// period first. NaN marks a period the provider reported without a value.
type StatementTable map[string][]float64

// Row returns the first row whose label is present, trying labels in order.
func (t StatementTable) Row(labels ...string) ([]float64, bool) {
	if len(t) == 0 {
		return nil, false
	}
	for _, l := range labels {
		if row, ok := t[l]; ok {
			return row, true
		}
	}
	return nil, false
}

// Latest returns the most recent value of the first matching row.
func (t StatementTable) Latest(labels ...string) (float64, bool) {
	row, ok := t.Row(labels...)
	if !ok || len(row) == 0 || math.IsNaN(row[0]) {
		return 0, false
	}
	return row[0], true
}

// MarshalJSON writes missing periods as null so gaps survive a cache round trip.
func (t StatementTable) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	out := make(map[string][]*float64, len(t))
	for label, row := range t {
		vals := make([]*float64, len(row))
		for i, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				v := v
				vals[i] = &v
			}
		}
		out[label] = vals
	}
	return json.Marshal(out)
}

func (t *StatementTable) UnmarshalJSON(b []byte) error {
	var in map[string][]*float64
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in == nil {
		*t = nil
		return nil
	}
	tbl := make(StatementTable, len(in))
	for label, vals := range in {
		row := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				row[i] = math.NaN()
			} else {
				row[i] = *v
			}
		}
		tbl[label] = row
	}
	*t = tbl
	return nil
}

// Financials groups the statement tables of one security. Any table may be nil.
type Financials struct {
	QuarterlyIncome  StatementTable `json:"quarterly_income,omitempty"`
	QuarterlyBalance StatementTable `json:"quarterly_balance,omitempty"`
	AnnualIncome     StatementTable `json:"annual_income,omitempty"`
	AnnualBalance    StatementTable `json:"annual_balance,omitempty"`
	Cashflow         StatementTable `json:"cashflow,omitempty"`
}

// Metadata is the flat company info mapping (sector, trailingPE, marketCap, ...).
type Metadata map[string]any

// Float returns a numeric field. Strings holding numbers are accepted.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatPtr is Float returning nil when the field is absent.
func (m Metadata) FloatPtr(key string) *float64 {
	if f, ok := m.Float(key); ok {
		return &f
	}
	return nil
}

// String returns a string field or "".
func (m Metadata) String(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Sector falls back from sector to industry to "General".
func (m Metadata) Sector() string {
	if s := m.String("sector"); s != "" {
		return s
	}
	if s := m.String("industry"); s != "" {
		return s
	}
	return "General"
}
