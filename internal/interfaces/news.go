package interfaces

import (
	"context"

	"stock-predictor/internal/types"
)

// NewsSource fetches the security, sector and market headline sets.
type NewsSource interface {
	FetchHeadlines(ctx context.Context, q types.NewsQuery) (types.Headlines, error)
}
