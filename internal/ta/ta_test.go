package ta

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	if got := SMA(closes, 2); got != 4.5 {
		t.Errorf("expected 4.5, got %f", got)
	}
	if got := SMA(closes, 6); !math.IsNaN(got) {
		t.Errorf("expected NaN for short series, got %f", got)
	}
}

func TestRSIZeroLoss(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	if got := RSI(closes, 14); got != 100 {
		t.Errorf("expected RSI 100 for a rising series, got %f", got)
	}
}

func TestRSIBalanced(t *testing.T) {
	// alternating +1/-1 deltas give equal average gain and loss
	closes := []float64{10}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+1)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}
	if got := RSI(closes, 14); math.Abs(got-50) > 1e-9 {
		t.Errorf("expected RSI 50, got %f", got)
	}
}

func TestPeriodReturn(t *testing.T) {
	closes := []float64{50, 80, 100, 90, 110}
	// base is closes[len-5] = 50
	if got := PeriodReturn(closes, 5); math.Abs(got-1.2) > 1e-9 {
		t.Errorf("expected 1.2, got %f", got)
	}
	if got := PeriodReturn([]float64{0, 1, 2}, 3); got != 0 {
		t.Errorf("expected 0 for zero base, got %f", got)
	}
	if got := PeriodReturn(closes, 10); got != 0 {
		t.Errorf("expected 0 for short series, got %f", got)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{2, 1},
		{-3, -1},
		{0.25, 0.25},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, c := range cases {
		if got := Clamp(c.in, -1, 1); got != c.want {
			t.Errorf("Clamp(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}
