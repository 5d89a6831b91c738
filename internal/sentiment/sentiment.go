// Package sentiment scores news headlines for the security, its sector and
// the broad market, and blends them into a single signal.
package sentiment

import (
	"fmt"
	"strings"

	"stock-predictor/internal/types"
)

// Analyzer yields a compound polarity in [-1, 1] for a piece of text.
type Analyzer interface {
	Compound(text string) float64
}

// NewAnalyzer returns the analyzer registered under name ("vader" or "lexicon").
func NewAnalyzer(name string) (Analyzer, error) {
	switch strings.ToLower(name) {
	case "", "vader":
		return NewVaderAnalyzer(), nil
	case "lexicon":
		return NewLexiconAnalyzer(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment analyzer %q", name)
	}
}

// Scorer averages headline polarity per scope.
type Scorer struct {
	cfg      types.SentimentConfig
	analyzer Analyzer
}

func NewScorer(cfg types.SentimentConfig, analyzer Analyzer) *Scorer {
	if analyzer == nil {
		analyzer = NewVaderAnalyzer()
	}
	return &Scorer{cfg: cfg, analyzer: analyzer}
}

// Score annotates every non-empty headline with its polarity. A scope with
// no headlines contributes 0 but keeps its weight; no scored headlines at
// all yields InsufficientData.
func (s *Scorer) Score(h types.Headlines) types.SentimentResult {
	scored := types.Headlines{
		Security: s.scoreSet(h.ByScope(types.ScopeSecurity)),
		Sector:   s.scoreSet(h.ByScope(types.ScopeSector)),
		Market:   s.scoreSet(h.ByScope(types.ScopeMarket)),
	}
	count := scored.Total()
	if count == 0 {
		return types.SentimentResult{ScoreResult: types.Insufficient(), Headlines: scored}
	}

	secMean := meanScore(scored.Security)
	sectorMean := meanScore(scored.Sector)
	marketMean := meanScore(scored.Market)
	composite := secMean*s.cfg.SecurityWeight + sectorMean*s.cfg.SectorWeight + marketMean*s.cfg.MarketWeight

	return types.SentimentResult{
		ScoreResult:   types.OK(composite),
		SecurityScore: secMean,
		SectorScore:   sectorMean,
		MarketScore:   marketMean,
		HeadlineCount: count,
		Headlines:     scored,
	}
}

// scoreSet copies the headlines that carry a title and attaches a score.
func (s *Scorer) scoreSet(in []types.Headline) []types.Headline {
	out := make([]types.Headline, 0, len(in))
	for _, h := range in {
		if strings.TrimSpace(h.Title) == "" {
			continue
		}
		v := clampUnit(s.analyzer.Compound(h.Title))
		h.Score = &v
		out = append(out, h)
	}
	return out
}

func meanScore(hs []types.Headline) float64 {
	if len(hs) == 0 {
		return 0
	}
	sum := 0.0
	for _, h := range hs {
		sum += *h.Score
	}
	return sum / float64(len(hs))
}

func clampUnit(v float64) float64 {
	if v != v {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
