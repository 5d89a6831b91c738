package interfaces

import (
	"context"

	"stock-predictor/internal/types"
)

// PriceHistorySource returns roughly one year of daily closes, oldest first.
type PriceHistorySource interface {
	FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error)
}

// MarketData is everything the analyzer needs about one ticker.
type MarketData interface {
	PriceHistorySource

	// FetchFinancials returns quarterly and annual statements plus cash flow
	FetchFinancials(ctx context.Context, ticker string) (types.Financials, error)

	// FetchMetadata returns the flat company profile and ratio mapping
	FetchMetadata(ctx context.Context, ticker string) (types.Metadata, error)
}
