package screenerobs

import (
	"context"
	"errors"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/screener"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// observableScreener wraps a Screener with logging and tracing
type observableScreener struct {
	screener interfaces.Screener
}

var _ interfaces.Screener = (*observableScreener)(nil)

// Wrap wraps a screener with observability middleware
func Wrap(s interfaces.Screener) interfaces.Screener {
	return &observableScreener{screener: s}
}

func (o *observableScreener) Run(ctx context.Context, entries []types.Security, market types.Market) (*types.ScreenReport, error) {
	ctx, span := trace.StartSpan(ctx, "screener.Run")
	defer span.End()

	logger.Info(ctx, "Screener starting", "entries", len(entries), "market", market)

	report, err := o.screener.Run(ctx, entries, market)
	switch {
	case errors.Is(err, screener.ErrNothingAnalyzed):
		logger.Warn(ctx, "Screener produced no rows", "entries", len(entries))
	case err != nil:
		logger.ErrorWithErr(ctx, "Screener stopped early", err, "analyzed", analyzed(report))
	default:
		logger.Info(ctx, "Screener finished",
			"total", report.Total,
			"analyzed", report.Analyzed,
			"skipped", report.Skipped,
			"duration", report.Duration,
		)
	}
	return report, err
}

func analyzed(r *types.ScreenReport) int {
	if r == nil {
		return 0
	}
	return r.Analyzed
}
