// Package fundamental scores financial health from quarterly statements and
// company metadata.
package fundamental

import (
	"math"

	"stock-predictor/internal/ta"
	"stock-predictor/internal/types"
)

// Scorer computes up to six independently optional signals.
type Scorer struct {
	cfg    types.FundamentalConfig
	labels Labels
}

func NewScorer(cfg types.FundamentalConfig, labels Labels) *Scorer {
	return &Scorer{cfg: cfg, labels: labels}
}

// Score returns InsufficientData only when none of the six signals can be
// computed. Missing rows, NaN values and zero denominators skip a signal.
func (s *Scorer) Score(income, balance types.StatementTable, meta types.Metadata) types.FundamentalResult {
	var res types.FundamentalResult

	if g, ok := s.qoqGrowth(income, s.labels.Revenue); ok {
		res.RevenueGrowth = &g
	}

	if margin, ok := meta.Float("profitMargins"); ok {
		res.RawMargin = ptr(margin)
		res.ProfitMargin = ptr(ta.Clamp(marginSignal(margin), -1, 1))
	}

	if g, ok := s.qoqGrowth(income, s.labels.NetIncome); ok {
		res.ProfitGrowth = &g
	}

	debt, okDebt := balance.Latest(s.labels.TotalDebt...)
	equity, okEquity := balance.Latest(s.labels.Equity...)
	if okDebt && okEquity {
		if equity <= 0 {
			// negative book value is treated as distress whatever the debt
			res.DebtToEquity = ptr(-1.0)
		} else {
			de := debt / equity
			res.RawDebtToEquity = ptr(de)
			res.DebtToEquity = ptr(debtEquitySignal(de))
		}
	}

	ca, okCA := balance.Latest(s.labels.CurrentAssets...)
	cl, okCL := balance.Latest(s.labels.CurrentLiabilities...)
	if okCA && okCL && cl != 0 {
		cr := ca / cl
		res.RawCurrentRatio = ptr(cr)
		res.CurrentRatio = ptr(currentRatioSignal(cr))
	}

	if roe, ok := meta.Float("returnOnEquity"); ok {
		res.RawROE = ptr(roe)
		res.ROE = ptr(ta.Clamp(roeSignal(roe), -1, 1))
	}

	type weighted struct {
		v *float64
		w float64
	}
	signals := []weighted{
		{res.RevenueGrowth, s.cfg.RevenueWeight},
		{res.ProfitMargin, s.cfg.MarginWeight},
		{res.ProfitGrowth, s.cfg.ProfitWeight},
		{res.DebtToEquity, s.cfg.DebtEquityWeight},
		{res.CurrentRatio, s.cfg.CurrentRatioWeight},
		{res.ROE, s.cfg.ROEWeight},
	}

	var present []float64
	fixed := 0.0
	for _, sig := range signals {
		if sig.v == nil {
			continue
		}
		present = append(present, *sig.v)
		fixed += *sig.v * sig.w
	}
	res.AvailableSignals = len(present)

	switch len(present) {
	case 0:
		res.ScoreResult = types.Insufficient()
	case len(signals):
		res.ScoreResult = types.OK(fixed)
	default:
		res.ScoreResult = types.OK(ta.Mean(present))
	}
	return res
}

// qoqGrowth is (latest-previous)/|previous| scaled by GrowthScale.
func (s *Scorer) qoqGrowth(t types.StatementTable, labels []string) (float64, bool) {
	row, ok := t.Row(labels...)
	if !ok || len(row) < 2 {
		return 0, false
	}
	latest, prev := row[0], row[1]
	if math.IsNaN(latest) || math.IsNaN(prev) || prev == 0 {
		return 0, false
	}
	return ta.Clamp((latest-prev)/math.Abs(prev)*s.cfg.GrowthScale, -1, 1), true
}

func marginSignal(m float64) float64 {
	switch {
	case m > 0.20:
		return math.Min(m*2, 1)
	case m > 0.10:
		return m*3 - 0.3
	case m > 0:
		return m*2 - 0.2
	default:
		return math.Max(m*2, -1)
	}
}

func debtEquitySignal(de float64) float64 {
	switch {
	case de < 0.5:
		return 1.0
	case de < 1.0:
		return 0.5
	case de < 2.0:
		return -0.3
	default:
		return -1.0
	}
}

func currentRatioSignal(cr float64) float64 {
	switch {
	case cr >= 2.0:
		return 1.0
	case cr >= 1.5:
		return 0.6
	case cr >= 1.0:
		return 0.2
	case cr >= 0.5:
		return -0.5
	default:
		return -1.0
	}
}

func roeSignal(roe float64) float64 {
	switch {
	case roe >= 0.25:
		return 1.0
	case roe >= 0.15:
		return 0.7
	case roe >= 0.10:
		return 0.4
	case roe >= 0:
		return 0.1
	default:
		return math.Max(roe*3, -1)
	}
}

func ptr(v float64) *float64 { return &v }
