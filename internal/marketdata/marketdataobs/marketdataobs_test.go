package marketdataobs

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"stock-predictor/internal/metrics"
	"stock-predictor/internal/types"
)

type stubData struct{}

func (stubData) FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error) {
	if ticker == "BAD" {
		return nil, errors.New("404")
	}
	return types.PriceSeries{{Close: 1}}, nil
}

func (stubData) FetchFinancials(ctx context.Context, ticker string) (types.Financials, error) {
	return types.Financials{}, nil
}

func (stubData) FetchMetadata(ctx context.Context, ticker string) (types.Metadata, error) {
	return nil, errors.New("crumb rejected")
}

func scrape(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	b, _ := io.ReadAll(rec.Body)
	return string(b)
}

func TestWrapRecordsFetches(t *testing.T) {
	ctx := context.Background()
	r := metrics.New()
	md := Wrap(stubData{}, r)

	if _, err := md.FetchPriceHistory(ctx, "OK"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := md.FetchPriceHistory(ctx, "BAD"); err == nil {
		t.Error("expected error to pass through")
	}
	md.FetchFinancials(ctx, "OK")
	if _, err := md.FetchMetadata(ctx, "OK"); err == nil {
		t.Error("expected metadata error to pass through")
	}

	body := scrape(t, r)
	for _, want := range []string{
		`predictor_fetch_errors_total{source="prices"} 1`,
		`predictor_fetch_errors_total{source="metadata"} 1`,
		`predictor_fetch_duration_seconds_count{source="prices"} 2`,
		`predictor_fetch_duration_seconds_count{source="financials"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in exposition", want)
		}
	}
}

func TestWrapWithoutRecorder(t *testing.T) {
	md := Wrap(stubData{}, nil)
	if _, err := md.FetchPriceHistory(context.Background(), "OK"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
