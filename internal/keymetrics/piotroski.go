package keymetrics

import "stock-predictor/internal/types"

const (
	CheckNetIncome     = "Net Income > 0"
	CheckROA           = "ROA > 0"
	CheckOperatingCash = "Operating Cash Flow > 0"
	CheckAccruals      = "Cash Flow > Net Income"
	CheckLongTermDebt  = "Long-term Debt Decreased"
	CheckCurrentRatio  = "Current Ratio Increased"
	CheckShares        = "No New Shares Issued"
	CheckGrossMargin   = "Gross Margin Increased"
	CheckAssetTurnover = "Asset Turnover Increased"
)

// piotroski runs the nine F-Score checks over the two most recent annual
// periods. It needs net income and total assets for both periods; any other
// missing row fails only its own check, except long-term debt and share
// count where absence counts as a pass.
func (c *Calculator) piotroski(income, balance, cashflow types.StatementTable) (int, []types.PiotroskiCheck, bool) {
	ni, ok1 := income.Row(c.labels.NetIncome...)
	assets, ok2 := balance.Row(c.labels.TotalAssets...)
	if !ok1 || !ok2 || len(ni) < 2 || len(assets) < 2 {
		return 0, nil, false
	}

	cfo, hasCFO := cashflow.Row(c.labels.OperatingCashFlow...)
	hasCFO = hasCFO && len(cfo) >= 1
	ltd, _ := balance.Row(c.labels.LongTermDebt...)
	ca, _ := balance.Row(c.labels.CurrentAssets...)
	cl, _ := balance.Row(c.labels.CurrentLiabilities...)
	shares, _ := balance.Row(c.labels.Shares...)
	gp, _ := income.Row(c.labels.GrossProfit...)
	rev, _ := income.Row(c.labels.Revenue...)

	checks := make([]types.PiotroskiCheck, 0, 9)
	add := func(label string, passed bool) {
		checks = append(checks, types.PiotroskiCheck{Label: label, Passed: passed})
	}

	add(CheckNetIncome, ni[0] > 0)

	roa, ok := ratio(ni[0], assets[0])
	add(CheckROA, ok && roa > 0)

	add(CheckOperatingCash, hasCFO && cfo[0] > 0)
	add(CheckAccruals, hasCFO && cfo[0] > ni[0])

	// no debt history is read as no debt
	if len(ltd) >= 2 {
		add(CheckLongTermDebt, ltd[0] <= ltd[1])
	} else {
		add(CheckLongTermDebt, true)
	}

	add(CheckCurrentRatio, improved(ca, cl))

	if len(shares) >= 2 {
		add(CheckShares, shares[0] <= shares[1])
	} else {
		add(CheckShares, true)
	}

	add(CheckGrossMargin, improved(gp, rev))
	add(CheckAssetTurnover, improved(rev, assets))

	score := 0
	for _, ch := range checks {
		if ch.Passed {
			score++
		}
	}
	return score, checks, true
}

// improved reports whether num/den for the latest period is at least the
// previous period's ratio. Missing periods or zero denominators fail.
func improved(num, den []float64) bool {
	if len(num) < 2 || len(den) < 2 {
		return false
	}
	cur, ok1 := ratio(num[0], den[0])
	prev, ok2 := ratio(num[1], den[1])
	return ok1 && ok2 && cur >= prev
}
