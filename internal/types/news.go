package types

// Scope tags which query a headline answered.
type Scope string

const (
	ScopeSecurity Scope = "security"
	ScopeSector   Scope = "sector"
	ScopeMarket   Scope = "market"
)

// Headline is one news item. Score is filled by the sentiment scorer.
type Headline struct {
	Title     string   `json:"title"`
	Published string   `json:"published,omitempty"`
	Source    string   `json:"source,omitempty"`
	Score     *float64 `json:"sentiment_score,omitempty"`
}

// Headlines holds the three independently fetched headline sets.
type Headlines struct {
	Security []Headline `json:"security"`
	Sector   []Headline `json:"sector"`
	Market   []Headline `json:"market"`
}

// ByScope returns the set for s.
func (h Headlines) ByScope(s Scope) []Headline {
	switch s {
	case ScopeSecurity:
		return h.Security
	case ScopeSector:
		return h.Sector
	case ScopeMarket:
		return h.Market
	}
	return nil
}

// Total counts headlines across all scopes.
func (h Headlines) Total() int {
	return len(h.Security) + len(h.Sector) + len(h.Market)
}

// NewsQuery describes the security whose headline sets should be fetched.
type NewsQuery struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Market Market `json:"market"`
}
