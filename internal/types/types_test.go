package types

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseMarket(t *testing.T) {
	cases := map[string]Market{
		"":       MarketIndia,
		"India":  MarketIndia,
		" nse ":  MarketIndia,
		"US":     MarketUS,
		"nasdaq": MarketUS,
		"usa":    MarketUS,
	}
	for in, want := range cases {
		got, err := ParseMarket(in)
		if err != nil || got != want {
			t.Errorf("ParseMarket(%q): expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseMarket("LSE"); err == nil {
		t.Error("expected error for unknown market")
	}
}

func TestStatementTableRow(t *testing.T) {
	tbl := StatementTable{
		"Total Revenue": {120, 100},
		"Net Income":    {math.NaN(), 8},
	}
	row, ok := tbl.Row("Revenue", "Total Revenue")
	if !ok || row[0] != 120 {
		t.Errorf("expected fallback to the second label, got %v %v", row, ok)
	}
	if _, ok := tbl.Latest("Net Income"); ok {
		t.Error("expected NaN latest value to be missing")
	}
	if _, ok := StatementTable(nil).Row("Total Revenue"); ok {
		t.Error("expected nil table to have no rows")
	}
}

func TestMetadata(t *testing.T) {
	m := Metadata{
		"trailingPE": "21.5",
		"marketCap":  float64(1e12),
		"beta":       math.Inf(1),
		"industry":   "Banks",
		"count":      3,
	}
	if v, ok := m.Float("trailingPE"); !ok || v != 21.5 {
		t.Errorf("expected numeric string to parse, got %v %v", v, ok)
	}
	if v, _ := m.Float("count"); v != 3 {
		t.Errorf("expected int to convert, got %v", v)
	}
	if m.FloatPtr("beta") != nil {
		t.Error("expected infinite values to be missing")
	}
	if m.Sector() != "Banks" {
		t.Errorf("expected industry fallback, got %s", m.Sector())
	}
	if (Metadata{}).Sector() != "General" {
		t.Error("expected General without sector or industry")
	}
}

func TestAnalysisRow(t *testing.T) {
	pe := 18.0
	a := Analysis{
		Security:   Security{Name: "Infosys", Ticker: "INFY.NS"},
		Technical:  TechnicalResult{ScoreResult: OK(0.4), CurrentPrice: 1500},
		Sentiment:  SentimentResult{ScoreResult: Insufficient()},
		KeyMetrics: KeyMetrics{PE: &pe},
		Composite:  CompositeResult{Status: StatusOK, Action: ActionBuy, Score: 0.35, Confidence: 35},
	}
	row, ok := a.Row()
	if !ok {
		t.Fatal("expected a row for a successful composite")
	}
	if row.Stock != "Infosys" || row.Action != ActionBuy || row.Confidence != 35 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.TechScore == nil || *row.TechScore != 0.4 {
		t.Errorf("expected tech score 0.4, got %v", row.TechScore)
	}
	if row.SentimentScore != nil {
		t.Error("expected no sentiment score for insufficient data")
	}
	if row.CMP == nil || *row.CMP != 1500 || row.PE == nil || *row.PE != 18 {
		t.Error("expected CMP and P/E carried over")
	}

	a.Composite = CompositeResult{Status: StatusError, Message: "no components"}
	if _, ok := a.Row(); ok {
		t.Error("expected no row without a prediction")
	}
}

func TestOKClamps(t *testing.T) {
	if OK(3).Score != 1 || OK(-2).Score != -1 || OK(math.NaN()).Score != 0 {
		t.Error("expected scores clamped into [-1, 1]")
	}
	if Failed(nil).Message == "" {
		t.Error("expected a message for a nil error")
	}
}

func TestStatementTableJSONKeepsGaps(t *testing.T) {
	fin := Financials{AnnualBalance: StatementTable{"Stockholders Equity": {300, math.NaN(), 100}}}
	b, err := json.Marshal(fin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Financials
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := back.AnnualBalance["Stockholders Equity"]
	if len(row) != 3 || row[0] != 300 || !math.IsNaN(row[1]) || row[2] != 100 {
		t.Errorf("expected [300 NaN 100], got %v", row)
	}
	if back.AnnualIncome != nil {
		t.Errorf("expected absent table to stay nil, got %v", back.AnnualIncome)
	}
}

func TestHeadlinesByScope(t *testing.T) {
	h := Headlines{
		Security: []Headline{{Title: "a"}, {Title: "b"}},
		Market:   []Headline{{Title: "c"}},
	}
	if len(h.ByScope(ScopeSecurity)) != 2 || len(h.ByScope(ScopeSector)) != 0 || len(h.ByScope(ScopeMarket)) != 1 {
		t.Errorf("unexpected scope split %+v", h)
	}
	if h.ByScope(Scope("other")) != nil {
		t.Error("expected nil for an unknown scope")
	}
	if h.Total() != 3 {
		t.Errorf("expected 3 headlines, got %d", h.Total())
	}
}
