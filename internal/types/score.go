package types

import (
	"math"
)

// Status tags a ScoreResult.
type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
	StatusError            Status = "error"
)

// ScoreResult is the tagged outcome shared by every scorer. Score is only
// meaningful when Status is StatusOK and always lies in [-1, 1].
type ScoreResult struct {
	Status  Status  `json:"status"`
	Score   float64 `json:"score"`
	Message string  `json:"message,omitempty"`
}

// OK builds a successful result, clamping score to [-1, 1].
func OK(score float64) ScoreResult {
	return ScoreResult{Status: StatusOK, Score: clampUnit(score)}
}

// Insufficient builds an InsufficientData result.
func Insufficient() ScoreResult {
	return ScoreResult{Status: StatusInsufficientData}
}

// Failed builds an Error result carrying err's message.
func Failed(err error) ScoreResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ScoreResult{Status: StatusError, Message: msg}
}

// IsOK reports whether the scorer produced a usable score.
func (r ScoreResult) IsOK() bool { return r.Status == StatusOK }

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// TechnicalResult is the output of the technical scorer.
type TechnicalResult struct {
	ScoreResult
	SMASignal      float64 `json:"sma_signal"`
	RSISignal      float64 `json:"rsi_signal"`
	RSI            float64 `json:"rsi_value"`
	MomentumSignal float64 `json:"momentum_signal"`
	SMAShort       float64 `json:"sma_short"`
	SMALong        float64 `json:"sma_long"`
	CurrentPrice   float64 `json:"current_price"`
}

// SentimentResult is the output of the sentiment scorer. Headlines carries
// every scored headline with its individual score.
type SentimentResult struct {
	ScoreResult
	SecurityScore float64   `json:"stock_sentiment"`
	SectorScore   float64   `json:"sector_sentiment"`
	MarketScore   float64   `json:"market_sentiment"`
	HeadlineCount int       `json:"headline_count"`
	Headlines     Headlines `json:"headlines"`
}

// FundamentalResult is the output of the fundamental scorer. Nil signals were
// not computable; raw ratios are informational and unclamped.
type FundamentalResult struct {
	ScoreResult
	RevenueGrowth    *float64 `json:"revenue_growth"`
	ProfitMargin     *float64 `json:"profit_margin"`
	ProfitGrowth     *float64 `json:"profit_growth"`
	DebtToEquity     *float64 `json:"debt_to_equity"`
	CurrentRatio     *float64 `json:"current_ratio"`
	ROE              *float64 `json:"roe"`
	AvailableSignals int      `json:"available_signals"`

	RawMargin       *float64 `json:"raw_margin"`
	RawDebtToEquity *float64 `json:"raw_de_ratio"`
	RawCurrentRatio *float64 `json:"raw_current_ratio"`
	RawROE          *float64 `json:"raw_roe"`
}

// PiotroskiCheck is one labelled F-Score test.
type PiotroskiCheck struct {
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}

// KeyMetrics are display-only ratios that travel alongside a prediction.
type KeyMetrics struct {
	PE           *float64 `json:"pe_ratio"`
	PriceToBook  *float64 `json:"price_to_book"`
	DebtToEquity *float64 `json:"debt_to_equity"`
	CurrentRatio *float64 `json:"current_ratio"`
	MarketCap    *float64 `json:"market_cap"`

	ROELatest  *float64 `json:"roe_latest"`
	ROE3Yr     *float64 `json:"roe_3yr"`
	ROE5Yr     *float64 `json:"roe_5yr"`
	ROCELatest *float64 `json:"roce_latest"`
	ROCE3Yr    *float64 `json:"roce_3yr"`
	ROCE5Yr    *float64 `json:"roce_5yr"`

	Piotroski       *int             `json:"piotroski_score"`
	PiotroskiChecks []PiotroskiCheck `json:"piotroski_details,omitempty"`
}

// Action is the discrete recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionHold Action = "HOLD"
	ActionSell Action = "SELL"
)

// Component names used in CompositeResult maps.
const (
	ComponentTechnical   = "technical"
	ComponentFundamental = "fundamental"
	ComponentSentiment   = "sentiment"
)

// CompositeResult is the blended prediction. Weights sums to 1 over the
// components that were usable.
type CompositeResult struct {
	Status     Status             `json:"status"`
	Message    string             `json:"message,omitempty"`
	Action     Action             `json:"action,omitempty"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	Components map[string]float64 `json:"components,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
}

// IsOK reports whether a prediction was produced.
func (c CompositeResult) IsOK() bool { return c.Status == StatusOK }
