package interfaces

import (
	"context"

	"stock-predictor/internal/types"
)

// Analyzer fetches and scores a single security
type Analyzer interface {
	Analyze(ctx context.Context, sec types.Security, market types.Market) (*types.Analysis, error)
}

// Screener runs the analyzer over a batch, skipping entries that fail
type Screener interface {
	Run(ctx context.Context, entries []types.Security, market types.Market) (*types.ScreenReport, error)
}

// Catalog resolves a named list of securities
type Catalog interface {
	Load(ctx context.Context, name string) ([]types.Security, error)
}
