package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// LexiconAnalyzer scores text against finance word lists in the spirit of
// Loughran-McDonald. Hedging words damp the result toward zero.
type LexiconAnalyzer struct {
	positive    map[string]bool
	negative    map[string]bool
	uncertainty map[string]bool
}

func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{
		positive:    wordSet(positiveWords),
		negative:    wordSet(negativeWords),
		uncertainty: wordSet(uncertaintyWords),
	}
}

// Compound is (pos-neg)/sqrt((pos+neg)^2+alpha), damped by the share of
// uncertainty words.
func (a *LexiconAnalyzer) Compound(text string) float64 {
	words := tokenize(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	pos, neg, unc := 0, 0, 0
	for _, w := range words {
		switch {
		case a.positive[w]:
			pos++
		case a.negative[w]:
			neg++
		}
		if a.uncertainty[w] {
			unc++
		}
	}
	if pos == 0 && neg == 0 {
		return 0
	}

	const alpha = 4.0
	net := float64(pos - neg)
	hits := float64(pos + neg)
	score := net / math.Sqrt(hits*hits+alpha)

	uncertainty := math.Min(float64(unc)/float64(len(words))*5, 1)
	score *= 1 - uncertainty*0.5

	return math.Max(-1, math.Min(1, score))
}

// tokenize splits on anything that is not a letter, digit or hyphen.
func tokenize(text string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.Trim(cur.String(), "-"))
			cur.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			cur.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return words
}

func wordSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var positiveWords = []string{
	"achieve", "achieves", "beat", "beats", "benefit", "better", "bullish",
	"climb", "climbs", "gain", "gains", "good", "great", "grew", "growth",
	"high", "higher", "improve", "improved", "improvement", "jump", "jumps",
	"outperform", "outperforms", "positive", "profit", "profitable", "rally",
	"rallies", "record", "rebound", "rise", "rises", "robust", "soar",
	"soars", "solid", "strength", "strong", "stronger", "success",
	"successful", "surge", "surges", "upbeat", "upgrade", "upgraded",
	"well-positioned", "win", "winning",
}

var negativeWords = []string{
	"adverse", "bearish", "cut", "cuts", "crash", "crisis", "decline",
	"declines", "default", "deficit", "downgrade", "downgraded", "downturn",
	"drop", "drops", "fail", "failure", "fall", "falls", "fear", "fears",
	"fraud", "headwind", "headwinds", "lawsuit", "loss", "losses", "low",
	"lower", "miss", "misses", "negative", "penalty", "plunge", "plunges",
	"poor", "probe", "recession", "risk", "selloff", "sell-off", "slump",
	"slumps", "slowdown", "tumble", "tumbles", "underperform", "weak",
	"weakness", "worse", "worst",
}

var uncertaintyWords = []string{
	"almost", "anticipate", "appear", "approximately", "could", "estimate",
	"expect", "expects", "if", "likely", "may", "maybe", "might", "pending",
	"perhaps", "possible", "possibly", "potential", "rumor", "should",
	"uncertain", "uncertainty", "unclear", "unlikely", "volatile",
	"volatility",
}
