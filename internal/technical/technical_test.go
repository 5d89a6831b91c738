package technical

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"stock-predictor/internal/types"
)

func series(closes ...float64) types.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(types.PriceSeries, len(closes))
	for i, c := range closes {
		out[i] = types.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func newScorer() *Scorer {
	return NewScorer(types.DefaultScoringConfig().Technical)
}

func TestScoreInsufficientData(t *testing.T) {
	closes := flat(60, 100)
	closes = closes[:49]
	res := newScorer().Score(series(closes...))
	if res.Status != types.StatusInsufficientData {
		t.Fatalf("expected insufficient_data, got %s", res.Status)
	}
}

func TestScoreDropsNonFiniteCloses(t *testing.T) {
	closes := flat(60, 100)
	closes[10] = math.NaN()
	closes[20] = math.Inf(1)
	res := newScorer().Score(series(closes...))
	if !res.IsOK() {
		t.Fatalf("expected ok with 58 finite closes, got %s", res.Status)
	}
	for name, v := range map[string]float64{"rsi": res.RSI, "sma_short": res.SMAShort, "sma_long": res.SMALong} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("expected finite %s, got %f", name, v)
		}
	}
	if _, err := json.Marshal(res); err != nil {
		t.Errorf("expected result to encode, got %v", err)
	}

	sparse := flat(60, math.NaN())
	for i := 0; i < 49; i++ {
		sparse[i] = 100
	}
	if res := newScorer().Score(series(sparse...)); res.Status != types.StatusInsufficientData {
		t.Errorf("expected insufficient_data with 49 finite closes, got %s", res.Status)
	}
}

func TestScoreZeroLossRSI(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	res := newScorer().Score(series(closes...))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if res.RSI != 100 {
		t.Errorf("expected RSI 100, got %f", res.RSI)
	}
	if res.RSISignal != -1 {
		t.Errorf("expected rsi signal -1, got %f", res.RSISignal)
	}
	if res.CurrentPrice != 159 {
		t.Errorf("expected current price 159, got %f", res.CurrentPrice)
	}
	if res.SMAShort <= res.SMALong {
		t.Errorf("expected short SMA above long SMA in an uptrend, got %f <= %f", res.SMAShort, res.SMALong)
	}
}

func TestScoreFlatSeries(t *testing.T) {
	res := newScorer().Score(series(flat(50, 100)...))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if res.SMASignal != 0 || res.MomentumSignal != 0 {
		t.Errorf("expected zero SMA and momentum signals, got %f and %f", res.SMASignal, res.MomentumSignal)
	}
	// no losses in the window means RSI 100 and the full overbought penalty
	if math.Abs(res.Score-(-0.35)) > 1e-9 {
		t.Errorf("expected score -0.35, got %f", res.Score)
	}
}

func TestScoreZeroLongAverage(t *testing.T) {
	res := newScorer().Score(series(flat(50, 0)...))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if res.SMASignal != 0 {
		t.Errorf("expected SMA signal 0 when long average is zero, got %f", res.SMASignal)
	}
	if res.MomentumSignal != 0 {
		t.Errorf("expected momentum 0 on zero bases, got %f", res.MomentumSignal)
	}
}

func TestScoreOversold(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	res := newScorer().Score(series(closes...))
	if res.RSI != 0 {
		t.Errorf("expected RSI 0 for a falling series, got %f", res.RSI)
	}
	if res.RSISignal != 1 {
		t.Errorf("expected rsi signal 1, got %f", res.RSISignal)
	}
	if res.MomentumSignal >= 0 {
		t.Errorf("expected negative momentum, got %f", res.MomentumSignal)
	}
}

func TestScoreBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newScorer()
	for i := 0; i < 500; i++ {
		n := 50 + rng.Intn(200)
		closes := make([]float64, n)
		for j := range closes {
			switch rng.Intn(10) {
			case 0:
				closes[j] = 0
			case 1:
				closes[j] = rng.Float64() * 1e9
			default:
				closes[j] = rng.Float64() * 500
			}
		}
		res := s.Score(series(closes...))
		for name, v := range map[string]float64{
			"score":    res.Score,
			"sma":      res.SMASignal,
			"rsi":      res.RSISignal,
			"momentum": res.MomentumSignal,
		} {
			if v < -1 || v > 1 || math.IsNaN(v) {
				t.Fatalf("iteration %d: %s signal out of range: %f", i, name, v)
			}
		}
	}
}
