package keymetrics

import (
	"math"
	"testing"

	"stock-predictor/internal/fundamental"
	"stock-predictor/internal/types"
)

func newCalc() *Calculator { return NewCalculator(fundamental.DefaultLabels()) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func checkMap(checks []types.PiotroskiCheck) map[string]bool {
	out := make(map[string]bool, len(checks))
	for _, c := range checks {
		out[c.Label] = c.Passed
	}
	return out
}

func TestPassThroughs(t *testing.T) {
	meta := types.Metadata{
		"trailingPE":   21.5,
		"priceToBook":  3.2,
		"debtToEquity": 45.0,
		"currentRatio": 1.8,
		"marketCap":    int64(5_000_000_000),
	}
	m := newCalc().Compute(meta, nil, nil, nil)
	if m.PE == nil || *m.PE != 21.5 {
		t.Errorf("expected P/E 21.5, got %v", m.PE)
	}
	if m.DebtToEquity == nil || !approx(*m.DebtToEquity, 0.45) {
		t.Errorf("expected D/E 0.45, got %v", m.DebtToEquity)
	}
	if m.MarketCap == nil || *m.MarketCap != 5e9 {
		t.Errorf("expected market cap 5e9, got %v", m.MarketCap)
	}
	if m.Piotroski != nil {
		t.Errorf("expected no F-Score without statements, got %d", *m.Piotroski)
	}
	if m.ROELatest != nil || m.ROCELatest != nil {
		t.Errorf("expected no ROE/ROCE without statements")
	}
}

func TestROEAveraging(t *testing.T) {
	income := types.StatementTable{"Net Income": {10, 20, 30, 40, 50, 60}}
	balance := types.StatementTable{"Stockholders Equity": {100, 100, 0, 100, 100, 100}}

	m := newCalc().Compute(nil, income, balance, nil)
	// period 3 has zero equity; periods capped at five -> 0.1, 0.2, 0.4, 0.5
	if m.ROELatest == nil || !approx(*m.ROELatest, 0.1) {
		t.Fatalf("expected latest ROE 0.1, got %v", m.ROELatest)
	}
	if m.ROE3Yr == nil || !approx(*m.ROE3Yr, (0.1+0.2+0.4)/3) {
		t.Errorf("expected 3y ROE %f, got %v", (0.1+0.2+0.4)/3, m.ROE3Yr)
	}
	if m.ROE5Yr == nil || !approx(*m.ROE5Yr, (0.1+0.2+0.4+0.5)/4) {
		t.Errorf("expected 5y ROE %f, got %v", (0.1+0.2+0.4+0.5)/4, m.ROE5Yr)
	}
}

func TestROCEShortHistory(t *testing.T) {
	income := types.StatementTable{"Operating Income": {30, 20}}
	balance := types.StatementTable{
		"Total Assets":        {300, 250},
		"Current Liabilities": {100, 50},
	}
	m := newCalc().Compute(nil, income, balance, nil)
	if m.ROCELatest == nil || !approx(*m.ROCELatest, 0.15) {
		t.Fatalf("expected latest ROCE 0.15, got %v", m.ROCELatest)
	}
	if m.ROCE3Yr == nil || !approx(*m.ROCE3Yr, 0.125) {
		t.Errorf("expected 3y ROCE 0.125, got %v", m.ROCE3Yr)
	}
	if m.ROCE5Yr != nil {
		t.Errorf("expected no 5y ROCE from two periods, got %f", *m.ROCE5Yr)
	}
}

func TestPiotroskiDefaultPass(t *testing.T) {
	income := types.StatementTable{"Net Income": {50, 40}}
	balance := types.StatementTable{"Total Assets": {1000, 900}}
	cashflow := types.StatementTable{"Operating Cash Flow": {30, 20}}

	m := newCalc().Compute(nil, income, balance, cashflow)
	if m.Piotroski == nil {
		t.Fatal("expected an F-Score")
	}
	got := checkMap(m.PiotroskiChecks)
	want := map[string]bool{
		CheckNetIncome:     true,
		CheckROA:           true,
		CheckOperatingCash: true,
		CheckAccruals:      false,
		CheckLongTermDebt:  true,
		CheckCurrentRatio:  false,
		CheckShares:        true,
		CheckGrossMargin:   false,
		CheckAssetTurnover: false,
	}
	for label, w := range want {
		if got[label] != w {
			t.Errorf("%s: expected %v, got %v", label, w, got[label])
		}
	}
	if *m.Piotroski != 5 {
		t.Errorf("expected score 5, got %d", *m.Piotroski)
	}
	if len(m.PiotroskiChecks) != 9 {
		t.Errorf("expected 9 checks, got %d", len(m.PiotroskiChecks))
	}
}

func TestPiotroskiFull(t *testing.T) {
	income := types.StatementTable{
		"Net Income":    {50, 40},
		"Total Revenue": {500, 400},
		"Gross Profit":  {200, 160},
	}
	balance := types.StatementTable{
		"Total Assets":           {1000, 1000},
		"Long Term Debt":         {300, 200},
		"Current Assets":         {150, 100},
		"Current Liabilities":    {100, 100},
		"Ordinary Shares Number": {110, 100},
	}
	cashflow := types.StatementTable{"Operating Cash Flow": {80}}

	m := newCalc().Compute(nil, income, balance, cashflow)
	got := checkMap(m.PiotroskiChecks)
	// debt and share count grew; gross margin equal counts as improved
	if got[CheckLongTermDebt] || got[CheckShares] {
		t.Errorf("expected debt and share checks to fail, got %v", got)
	}
	for _, label := range []string{CheckAccruals, CheckCurrentRatio, CheckGrossMargin, CheckAssetTurnover} {
		if !got[label] {
			t.Errorf("%s: expected pass", label)
		}
	}
	if *m.Piotroski != 7 {
		t.Errorf("expected score 7, got %d", *m.Piotroski)
	}
}

func TestPiotroskiNeedsTwoPeriods(t *testing.T) {
	income := types.StatementTable{"Net Income": {50}}
	balance := types.StatementTable{"Total Assets": {1000, 900}}
	m := newCalc().Compute(nil, income, balance, nil)
	if m.Piotroski != nil {
		t.Errorf("expected no F-Score with one net income period, got %d", *m.Piotroski)
	}
}
