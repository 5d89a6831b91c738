package types

import "time"

// Security identifies one screener entry.
type Security struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

// Analysis is the full per-security output of one scoring pass.
type Analysis struct {
	Security    Security          `json:"security"`
	Sector      string            `json:"sector"`
	Technical   TechnicalResult   `json:"technical"`
	Sentiment   SentimentResult   `json:"sentiment"`
	Fundamental FundamentalResult `json:"fundamental"`
	KeyMetrics  KeyMetrics        `json:"key_metrics"`
	Composite   CompositeResult   `json:"composite"`
}

// ScreenerRow is one flattened, successfully scored security.
type ScreenerRow struct {
	Stock            string   `json:"Stock"`
	Ticker           string   `json:"Ticker"`
	Action           Action   `json:"Action"`
	Confidence       float64  `json:"Confidence"`
	Score            float64  `json:"Score"`
	TechScore        *float64 `json:"Tech Score"`
	SentimentScore   *float64 `json:"Sentiment Score"`
	FundamentalScore *float64 `json:"Fundamental Score"`
	PE               *float64 `json:"P/E"`
	PB               *float64 `json:"P/B"`
	ROE              *float64 `json:"ROE"`
	ROCE             *float64 `json:"ROCE"`
	Piotroski        *int     `json:"Piotroski"`
	DebtToEquity     *float64 `json:"D/E"`
	CurrentRatio     *float64 `json:"Current Ratio"`
	MarketCap        *float64 `json:"Market Cap"`
	CMP              *float64 `json:"CMP"`
}

// Row flattens an analysis into a screener row. ok is false when the
// composite did not produce a prediction.
func (a Analysis) Row() (ScreenerRow, bool) {
	if !a.Composite.IsOK() {
		return ScreenerRow{}, false
	}
	row := ScreenerRow{
		Stock:            a.Security.Name,
		Ticker:           a.Security.Ticker,
		Action:           a.Composite.Action,
		Confidence:       a.Composite.Confidence,
		Score:            a.Composite.Score,
		TechScore:        scoreOf(a.Technical.ScoreResult),
		SentimentScore:   scoreOf(a.Sentiment.ScoreResult),
		FundamentalScore: scoreOf(a.Fundamental.ScoreResult),
		PE:               a.KeyMetrics.PE,
		PB:               a.KeyMetrics.PriceToBook,
		ROE:              a.KeyMetrics.ROELatest,
		ROCE:             a.KeyMetrics.ROCELatest,
		Piotroski:        a.KeyMetrics.Piotroski,
		DebtToEquity:     a.KeyMetrics.DebtToEquity,
		CurrentRatio:     a.KeyMetrics.CurrentRatio,
		MarketCap:        a.KeyMetrics.MarketCap,
	}
	if a.Technical.IsOK() {
		cmp := a.Technical.CurrentPrice
		row.CMP = &cmp
	}
	return row, true
}

func scoreOf(r ScoreResult) *float64 {
	if !r.IsOK() {
		return nil
	}
	s := r.Score
	return &s
}

// ScreenReport is the outcome of one screener pass. Rows are in input order.
type ScreenReport struct {
	Rows     []ScreenerRow `json:"rows"`
	Total    int           `json:"total"`
	Analyzed int           `json:"analyzed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration_ns"`
}
