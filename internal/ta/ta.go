package ta

import "math"

// SMA is the mean of the last n closes, NaN when fewer than n are available.
func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// RSI uses simple rolling means of gains and losses over the last period
// deltas. A zero average loss yields 100.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		return 100.0
	}
	rs := (gain / float64(period)) / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// PeriodReturn is (last-base)/base with base = closes[len-lookback].
// A zero base, or too few points, returns 0.
func PeriodReturn(closes []float64, lookback int) float64 {
	if lookback <= 0 || len(closes) < lookback {
		return 0
	}
	base := closes[len(closes)-lookback]
	if base == 0 {
		return 0
	}
	return (closes[len(closes)-1] - base) / base
}

// Mean returns 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}

// Clamp bounds v to [lo, hi]; NaN and Inf collapse to 0.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
