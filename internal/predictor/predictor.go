// Package predictor blends the technical, fundamental and sentiment scores
// into a BUY/HOLD/SELL call with a confidence percentage.
package predictor

import (
	"errors"
	"math"
	"sort"

	"stock-predictor/internal/types"
)

// ErrNoComponents is reported when none of the three scorers produced a score.
var ErrNoComponents = errors.New("no analysis data available")

// componentOrder keeps the weighted sum deterministic across calls.
var componentOrder = []string{
	types.ComponentTechnical,
	types.ComponentFundamental,
	types.ComponentSentiment,
}

// Predict is pure: identical inputs always give identical results.
func Predict(cfg types.CompositeConfig, tech types.TechnicalResult, sent types.SentimentResult, fund types.FundamentalResult) types.CompositeResult {
	nominal := map[string]float64{
		types.ComponentTechnical:   cfg.TechnicalWeight,
		types.ComponentFundamental: cfg.FundamentalWeight,
		types.ComponentSentiment:   cfg.SentimentWeight,
	}
	results := map[string]types.ScoreResult{
		types.ComponentTechnical:   tech.ScoreResult,
		types.ComponentFundamental: fund.ScoreResult,
		types.ComponentSentiment:   sent.ScoreResult,
	}

	components := make(map[string]float64, 3)
	present := make(map[string]float64, 3)
	for _, name := range componentOrder {
		if r := results[name]; r.IsOK() {
			components[name] = r.Score
			present[name] = nominal[name]
		}
	}
	if len(components) == 0 {
		return types.CompositeResult{Status: types.StatusError, Message: ErrNoComponents.Error()}
	}

	weights := Renormalize(present)
	score := 0.0
	for _, name := range componentOrder {
		if w, ok := weights[name]; ok {
			score += w * components[name]
		}
	}
	score = clamp(score, -1, 1)

	return types.CompositeResult{
		Status:     types.StatusOK,
		Action:     action(cfg, score),
		Score:      score,
		Confidence: confidence(cfg, score, components),
		Components: components,
		Weights:    weights,
	}
}

// Renormalize divides each weight by the sum of all weights. A zero or
// negative total spreads the weight evenly. Keys are summed in sorted order
// so the result is bit-stable across calls.
func Renormalize(nominal map[string]float64) map[string]float64 {
	keys := make([]string, 0, len(nominal))
	for k := range nominal {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(nominal))
	total := 0.0
	for _, k := range keys {
		total += nominal[k]
	}
	for k, w := range nominal {
		if total <= 0 {
			out[k] = 1 / float64(len(nominal))
			continue
		}
		out[k] = w / total
	}
	return out
}

func action(cfg types.CompositeConfig, score float64) types.Action {
	switch {
	case score >= cfg.BuyThreshold:
		return types.ActionBuy
	case score <= cfg.SellThreshold:
		return types.ActionSell
	default:
		return types.ActionHold
	}
}

// confidence adds a magnitude term (max 50), an agreement term (max 30) and a
// coverage term (max 20), floored at cfg.ConfidenceFloor and rounded to one
// decimal.
func confidence(cfg types.CompositeConfig, score float64, components map[string]float64) float64 {
	magnitude := math.Min(math.Abs(score)*50, 50)

	agreement := 10.0
	if len(components) >= 2 {
		agree := 0
		for _, v := range components {
			if (v >= 0) == (score >= 0) {
				agree++
			}
		}
		agreement = float64(agree) / float64(len(components)) * 30
	}

	coverage := float64(len(components)) / float64(len(componentOrder)) * 20

	c := clamp(magnitude+agreement+coverage, cfg.ConfidenceFloor, 100)
	return math.Round(c*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return math.Max(lo, math.Min(hi, v))
}
