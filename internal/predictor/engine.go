package predictor

import (
	"context"
	"fmt"
	"strings"

	"stock-predictor/internal/fundamental"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/keymetrics"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/metrics"
	"stock-predictor/internal/sentiment"
	"stock-predictor/internal/technical"
	"stock-predictor/internal/types"
)

// SecurityInput is a snapshot of everything scored for one security.
type SecurityInput struct {
	Security   types.Security
	Prices     types.PriceSeries
	Financials types.Financials
	Metadata   types.Metadata
	Headlines  types.Headlines
}

// Engine runs the scorers over fetched inputs. It is safe for concurrent use.
type Engine struct {
	cfg         types.ScoringConfig
	technical   *technical.Scorer
	sentiment   *sentiment.Scorer
	fundamental *fundamental.Scorer
	keyMetrics  *keymetrics.Calculator

	data     interfaces.MarketData
	news     interfaces.NewsSource
	recorder *metrics.Recorder
}

type Option func(*Engine)

// WithNews enables headline fetching; without it sentiment is always
// InsufficientData.
func WithNews(src interfaces.NewsSource) Option {
	return func(e *Engine) { e.news = src }
}

// WithMetrics counts produced actions.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLabels overrides the statement label synonyms.
func WithLabels(l fundamental.Labels) Option {
	return func(e *Engine) {
		e.fundamental = fundamental.NewScorer(e.cfg.Fundamental, l)
		e.keyMetrics = keymetrics.NewCalculator(l)
	}
}

func NewEngine(cfg types.ScoringConfig, analyzer sentiment.Analyzer, data interfaces.MarketData, opts ...Option) *Engine {
	labels := fundamental.DefaultLabels()
	e := &Engine{
		cfg:         cfg,
		technical:   technical.NewScorer(cfg.Technical),
		sentiment:   sentiment.NewScorer(cfg.Sentiment, analyzer),
		fundamental: fundamental.NewScorer(cfg.Fundamental, labels),
		keyMetrics:  keymetrics.NewCalculator(labels),
		data:        data,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreSecurity scores a snapshot without any I/O.
func (e *Engine) ScoreSecurity(in SecurityInput) types.Analysis {
	fin := in.Financials
	tech := e.technical.Score(in.Prices)
	sent := e.sentiment.Score(in.Headlines)
	fund := e.fundamental.Score(fin.QuarterlyIncome, fin.QuarterlyBalance, in.Metadata)
	km := e.keyMetrics.Compute(in.Metadata, fin.AnnualIncome, fin.AnnualBalance, fin.Cashflow)

	return types.Analysis{
		Security:    in.Security,
		Sector:      in.Metadata.Sector(),
		Technical:   tech,
		Sentiment:   sent,
		Fundamental: fund,
		KeyMetrics:  km,
		Composite:   Predict(e.cfg.Composite, tech, sent, fund),
	}
}

// Analyze fetches and scores one security. Only a price-history failure is
// returned as an error; financials, metadata and headlines degrade to empty
// inputs. A scorer left without a score because its fetch failed reports
// Error with the fetch message.
func (e *Engine) Analyze(ctx context.Context, sec types.Security, market types.Market) (*types.Analysis, error) {
	if e.data == nil {
		return nil, fmt.Errorf("no market data source configured")
	}

	prices, err := e.data.FetchPriceHistory(ctx, sec.Ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch price history for %s: %w", sec.Ticker, err)
	}

	fin, finErr := e.data.FetchFinancials(ctx, sec.Ticker)
	if finErr != nil {
		logger.Warn(ctx, "Financials unavailable, continuing without", "ticker", sec.Ticker, "error", finErr)
		fin = types.Financials{}
	}

	meta, err := e.data.FetchMetadata(ctx, sec.Ticker)
	if err != nil {
		logger.Warn(ctx, "Metadata unavailable, continuing without", "ticker", sec.Ticker, "error", err)
		meta = types.Metadata{}
	}

	var headlines types.Headlines
	var newsErr error
	if e.news != nil {
		headlines, newsErr = e.news.FetchHeadlines(ctx, types.NewsQuery{
			Name:   displayName(sec),
			Sector: meta.Sector(),
			Market: market,
		})
		if newsErr != nil {
			logger.Warn(ctx, "Headlines unavailable, continuing without", "ticker", sec.Ticker, "error", newsErr)
			headlines = types.Headlines{}
		}
	}

	a := e.ScoreSecurity(SecurityInput{
		Security:   sec,
		Prices:     prices,
		Financials: fin,
		Metadata:   meta,
		Headlines:  headlines,
	})
	// non-ok components never reach the composite, so this only sharpens the status
	if finErr != nil && !a.Fundamental.IsOK() {
		a.Fundamental.ScoreResult = types.Failed(fmt.Errorf("fetch financials: %w", finErr))
	}
	if newsErr != nil && !a.Sentiment.IsOK() {
		a.Sentiment.ScoreResult = types.Failed(fmt.Errorf("fetch headlines: %w", newsErr))
	}

	if a.Composite.IsOK() {
		e.recorder.RecordAction(string(a.Composite.Action))
		logger.Decision(ctx, sec.Ticker, string(a.Composite.Action), a.Composite.Confidence, reason(a),
			"score", a.Composite.Score,
			"components", len(a.Composite.Components))
	} else {
		logger.Debug(ctx, "No prediction", "ticker", sec.Ticker, "reason", a.Composite.Message)
	}
	return &a, nil
}

func displayName(sec types.Security) string {
	if sec.Name != "" {
		return sec.Name
	}
	return sec.Ticker
}

// reason summarises which components drove the call, e.g.
// "technical=0.42 fundamental=0.10".
func reason(a types.Analysis) string {
	var parts []string
	for _, name := range componentOrder {
		if v, ok := a.Composite.Components[name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%.2f", name, v))
		}
	}
	return strings.Join(parts, " ")
}
