// Package keymetrics computes display-only ratios that travel with a
// prediction but never feed it.
package keymetrics

import (
	"math"

	"stock-predictor/internal/fundamental"
	"stock-predictor/internal/types"
)

const maxPeriods = 5

type Calculator struct {
	labels fundamental.Labels
}

func NewCalculator(labels fundamental.Labels) *Calculator {
	return &Calculator{labels: labels}
}

// Compute fills whatever it can; every field is independently optional.
func (c *Calculator) Compute(meta types.Metadata, income, balance, cashflow types.StatementTable) types.KeyMetrics {
	m := types.KeyMetrics{
		PE:           meta.FloatPtr("trailingPE"),
		PriceToBook:  meta.FloatPtr("priceToBook"),
		CurrentRatio: meta.FloatPtr("currentRatio"),
		MarketCap:    meta.FloatPtr("marketCap"),
	}
	// Yahoo reports debtToEquity as a percentage
	if de, ok := meta.Float("debtToEquity"); ok {
		v := de / 100
		m.DebtToEquity = &v
	}

	roe := c.roeSeries(income, balance)
	m.ROELatest, m.ROE3Yr, m.ROE5Yr = trailing(roe)

	roce := c.roceSeries(income, balance)
	m.ROCELatest, m.ROCE3Yr, m.ROCE5Yr = trailing(roce)

	if score, checks, ok := c.piotroski(income, balance, cashflow); ok {
		m.Piotroski = &score
		m.PiotroskiChecks = checks
	}
	return m
}

// roeSeries is net income over equity for up to five aligned periods.
func (c *Calculator) roeSeries(income, balance types.StatementTable) []float64 {
	ni, ok1 := income.Row(c.labels.NetIncome...)
	eq, ok2 := balance.Row(c.labels.Equity...)
	if !ok1 || !ok2 {
		return nil
	}
	n := minInt(len(ni), len(eq), maxPeriods)
	var out []float64
	for i := 0; i < n; i++ {
		if r, ok := ratio(ni[i], eq[i]); ok {
			out = append(out, r)
		}
	}
	return out
}

// roceSeries is EBIT over capital employed (total assets minus current
// liabilities).
func (c *Calculator) roceSeries(income, balance types.StatementTable) []float64 {
	ebit, ok1 := income.Row(c.labels.EBIT...)
	assets, ok2 := balance.Row(c.labels.TotalAssets...)
	cl, ok3 := balance.Row(c.labels.CurrentLiabilities...)
	if !ok1 || !ok2 || !ok3 {
		return nil
	}
	n := minInt(len(ebit), len(assets), len(cl), maxPeriods)
	var out []float64
	for i := 0; i < n; i++ {
		if r, ok := ratio(ebit[i], assets[i]-cl[i]); ok {
			out = append(out, r)
		}
	}
	return out
}

// trailing reports the latest value, the mean of the first three once two
// values exist and the mean of the first five once four exist.
func trailing(vals []float64) (latest, avg3, avg5 *float64) {
	if len(vals) >= 1 {
		v := vals[0]
		latest = &v
	}
	if len(vals) >= 2 {
		v := mean(vals[:minInt(3, len(vals))])
		avg3 = &v
	}
	if len(vals) >= 4 {
		v := mean(vals[:minInt(5, len(vals))])
		avg5 = &v
	}
	return latest, avg3, avg5
}

// ratio rejects zero denominators and NaN operands.
func ratio(num, den float64) (float64, bool) {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0, false
	}
	return num / den, true
}

func mean(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
