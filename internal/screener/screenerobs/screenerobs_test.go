package screenerobs

import (
	"context"
	"errors"
	"testing"

	"stock-predictor/internal/screener"
	"stock-predictor/internal/types"
)

type stubScreener struct {
	report *types.ScreenReport
	err    error
	calls  int
}

func (s *stubScreener) Run(ctx context.Context, entries []types.Security, market types.Market) (*types.ScreenReport, error) {
	s.calls++
	return s.report, s.err
}

func TestWrapPassesThrough(t *testing.T) {
	inner := &stubScreener{report: &types.ScreenReport{Total: 2, Analyzed: 2}}
	report, err := Wrap(inner).Run(context.Background(), []types.Security{{Ticker: "A"}, {Ticker: "B"}}, types.MarketUS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Analyzed != 2 || inner.calls != 1 {
		t.Errorf("expected pass-through, got %+v after %d calls", report, inner.calls)
	}
}

func TestWrapKeepsSentinelErrors(t *testing.T) {
	inner := &stubScreener{report: &types.ScreenReport{Total: 1, Skipped: 1}, err: screener.ErrNothingAnalyzed}
	_, err := Wrap(inner).Run(context.Background(), []types.Security{{Ticker: "A"}}, types.MarketIndia)
	if !errors.Is(err, screener.ErrNothingAnalyzed) {
		t.Errorf("expected ErrNothingAnalyzed, got %v", err)
	}

	inner = &stubScreener{err: context.Canceled}
	if _, err := Wrap(inner).Run(context.Background(), nil, types.MarketUS); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
