package marketdataobs

import (
	"context"
	"time"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/metrics"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// observableMarketData wraps MarketData with tracing, timing logs and fetch metrics
type observableMarketData struct {
	inner    interfaces.MarketData
	recorder *metrics.Recorder
}

var _ interfaces.MarketData = (*observableMarketData)(nil)

// Wrap wraps a market data source with observability middleware. recorder may be nil.
func Wrap(inner interfaces.MarketData, recorder *metrics.Recorder) interfaces.MarketData {
	return &observableMarketData{inner: inner, recorder: recorder}
}

func (o *observableMarketData) FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.FetchPriceHistory")
	defer span.End()

	start := time.Now()
	series, err := o.inner.FetchPriceHistory(ctx, ticker)
	o.recorder.RecordFetch("prices", time.Since(start), err)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch price history", err, "ticker", ticker)
		return nil, err
	}

	logger.Debug(ctx, "Price history fetched", "ticker", ticker, "points", len(series), "duration", time.Since(start))
	return series, nil
}

func (o *observableMarketData) FetchFinancials(ctx context.Context, ticker string) (types.Financials, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.FetchFinancials")
	defer span.End()

	start := time.Now()
	fin, err := o.inner.FetchFinancials(ctx, ticker)
	o.recorder.RecordFetch("financials", time.Since(start), err)
	if err != nil {
		logger.WarnWithErr(ctx, "Failed to fetch financials", err, "ticker", ticker)
		return fin, err
	}

	logger.Debug(ctx, "Financials fetched", "ticker", ticker,
		"quarterly_income_rows", len(fin.QuarterlyIncome),
		"annual_balance_rows", len(fin.AnnualBalance),
		"duration", time.Since(start))
	return fin, nil
}

func (o *observableMarketData) FetchMetadata(ctx context.Context, ticker string) (types.Metadata, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.FetchMetadata")
	defer span.End()

	start := time.Now()
	meta, err := o.inner.FetchMetadata(ctx, ticker)
	o.recorder.RecordFetch("metadata", time.Since(start), err)
	if err != nil {
		logger.WarnWithErr(ctx, "Failed to fetch metadata", err, "ticker", ticker)
		return meta, err
	}

	logger.Debug(ctx, "Metadata fetched", "ticker", ticker, "fields", len(meta), "duration", time.Since(start))
	return meta, nil
}
