package fundamental

// Labels lists, per financial concept, the statement labels that may carry
// it. Providers disagree on naming, so each list is tried in order and the
// first present row wins.
type Labels struct {
	Revenue            []string `yaml:"revenue"`
	NetIncome          []string `yaml:"net_income"`
	TotalDebt          []string `yaml:"total_debt"`
	Equity             []string `yaml:"equity"`
	CurrentAssets      []string `yaml:"current_assets"`
	CurrentLiabilities []string `yaml:"current_liabilities"`
	EBIT               []string `yaml:"ebit"`
	TotalAssets        []string `yaml:"total_assets"`
	OperatingCashFlow  []string `yaml:"operating_cash_flow"`
	LongTermDebt       []string `yaml:"long_term_debt"`
	Shares             []string `yaml:"shares"`
	GrossProfit        []string `yaml:"gross_profit"`
}

// DefaultLabels covers the Yahoo Finance naming in both its spaced and
// camel-case spellings.
func DefaultLabels() Labels {
	return Labels{
		Revenue:            []string{"Total Revenue", "TotalRevenue", "Revenue"},
		NetIncome:          []string{"Net Income", "NetIncome", "Net Income Common Stockholders"},
		TotalDebt:          []string{"Total Debt", "TotalDebt", "Long Term Debt And Capital Lease Obligation"},
		Equity:             []string{"Stockholders Equity", "StockholdersEquity", "Total Equity Gross Minority Interest", "Common Stock Equity"},
		CurrentAssets:      []string{"Current Assets", "CurrentAssets", "Total Current Assets"},
		CurrentLiabilities: []string{"Current Liabilities", "CurrentLiabilities", "Total Current Liabilities"},
		EBIT:               []string{"EBIT", "Operating Income", "OperatingIncome"},
		TotalAssets:        []string{"Total Assets", "TotalAssets"},
		OperatingCashFlow:  []string{"Operating Cash Flow", "Total Cash From Operating Activities", "Cash Flow From Continuing Operating Activities"},
		LongTermDebt:       []string{"Long Term Debt", "LongTermDebt", "Long Term Debt And Capital Lease Obligation"},
		Shares:             []string{"Ordinary Shares Number", "Share Issued", "Common Stock"},
		GrossProfit:        []string{"Gross Profit", "GrossProfit"},
	}
}
