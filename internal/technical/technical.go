// Package technical turns a daily close series into a trend/momentum signal.
package technical

import (
	"math"

	"stock-predictor/internal/ta"
	"stock-predictor/internal/types"
)

// Scorer computes the SMA crossover, RSI and momentum blend.
type Scorer struct {
	cfg types.TechnicalConfig
}

// NewScorer creates a scorer bound to cfg.
func NewScorer(cfg types.TechnicalConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score needs at least LongWindow finite closes; fewer yields
// InsufficientData. NaN and infinite closes are dropped first.
func (s *Scorer) Score(series types.PriceSeries) types.TechnicalResult {
	closes := finiteCloses(series)
	if len(closes) < s.cfg.LongWindow {
		return types.TechnicalResult{ScoreResult: types.Insufficient()}
	}

	smaShort := ta.SMA(closes, s.cfg.ShortWindow)
	smaLong := ta.SMA(closes, s.cfg.LongWindow)
	smaSignal := 0.0
	if smaLong != 0 {
		smaSignal = ta.Clamp((smaShort-smaLong)/smaLong*s.cfg.SMAScale, -1, 1)
	}

	rsi := ta.RSI(closes, s.cfg.RSIPeriod)
	rsiSignal := ta.Clamp(s.rsiSignal(rsi), -1, 1)

	momentum := 0.0
	if len(closes) >= s.cfg.MomentumLong {
		short := ta.PeriodReturn(closes, s.cfg.MomentumShort)
		long := ta.PeriodReturn(closes, s.cfg.MomentumLong)
		momentum = ta.Clamp((short*s.cfg.MomentumShortWeight+long*s.cfg.MomentumLongWeight)*s.cfg.MomentumScale, -1, 1)
	}

	composite := smaSignal*s.cfg.SMAWeight + rsiSignal*s.cfg.RSIWeight + momentum*s.cfg.MomentumWeight

	return types.TechnicalResult{
		ScoreResult:    types.OK(composite),
		SMASignal:      smaSignal,
		RSISignal:      rsiSignal,
		RSI:            rsi,
		MomentumSignal: momentum,
		SMAShort:       smaShort,
		SMALong:        smaLong,
		CurrentPrice:   closes[len(closes)-1],
	}
}

// rsiSignal maps overbought to a sell lean and oversold to a buy lean.
func (s *Scorer) rsiSignal(rsi float64) float64 {
	switch {
	case rsi >= s.cfg.RSIOverbought:
		return -(rsi - s.cfg.RSIOverbought) / (100 - s.cfg.RSIOverbought)
	case rsi <= s.cfg.RSIOversold:
		return (s.cfg.RSIOversold - rsi) / s.cfg.RSIOversold
	default:
		return (rsi - 50) / 40
	}
}

func finiteCloses(series types.PriceSeries) []float64 {
	out := make([]float64, 0, len(series))
	for _, p := range series {
		if !math.IsNaN(p.Close) && !math.IsInf(p.Close, 0) {
			out = append(out, p.Close)
		}
	}
	return out
}
