package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"

	"stock-predictor/internal/screener"
	"stock-predictor/internal/types"
)

func sampleRows() []types.ScreenerRow {
	pe, tech := 21.456, 0.5
	p := 7
	return []types.ScreenerRow{
		{Stock: "Infosys", Ticker: "INFY.NS", Action: types.ActionBuy, Confidence: 42.5, Score: 0.425, TechScore: &tech, PE: &pe, Piotroski: &p},
		{Stock: "Wipro", Ticker: "WIPRO.NS", Action: types.ActionHold, Confidence: 5, Score: 0.01},
	}
}

func TestPrintCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := printCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(records))
	}
	if records[0][8] != "P/E" || records[1][8] != "21.46" {
		t.Errorf("unexpected P/E column %q / %q", records[0][8], records[1][8])
	}
	if records[2][5] != "" || records[2][12] != "" {
		t.Errorf("expected blank cells for missing values, got %q and %q", records[2][5], records[2][12])
	}
	if records[1][12] != "7" {
		t.Errorf("expected Piotroski 7, got %q", records[1][12])
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, sampleRows())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Infosys") || !strings.Contains(lines[1], "BUY") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "-") {
		t.Errorf("expected dashes for missing values in %q", lines[2])
	}
}

func TestPrintAnalysisWithoutPrediction(t *testing.T) {
	var buf bytes.Buffer
	printAnalysis(&buf, &types.Analysis{
		Security:  types.Security{Name: "Tiny", Ticker: "TINY"},
		Technical: types.TechnicalResult{ScoreResult: types.Insufficient()},
		Composite: types.CompositeResult{Status: types.StatusError, Message: "no component produced a score"},
	})
	out := buf.String()
	if !strings.Contains(out, "insufficient_data") || !strings.Contains(out, "No prediction") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExitCode(t *testing.T) {
	if exitCode(nil) != exitOK {
		t.Error("expected 0 for success")
	}
	if got := exitCode(fmt.Errorf("screen: %w", screener.ErrNothingAnalyzed)); got != exitNoResults {
		t.Errorf("expected %d when nothing was analyzed, got %d", exitNoResults, got)
	}
	if got := exitCode(errors.New("boom")); got != exitError {
		t.Errorf("expected %d, got %d", exitError, got)
	}
}

func TestResolveMarket(t *testing.T) {
	if m, _ := resolveMarket("", "US"); m != types.MarketUS {
		t.Errorf("expected fallback US, got %s", m)
	}
	if m, _ := resolveMarket("india", "US"); m != types.MarketIndia {
		t.Errorf("expected flag to win, got %s", m)
	}
	if _, err := resolveMarket("mars", ""); err == nil {
		t.Error("expected error for unknown market")
	}
}
