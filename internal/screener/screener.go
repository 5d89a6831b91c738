// Package screener runs the analysis pipeline over a batch of securities.
package screener

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/metrics"
	"stock-predictor/internal/types"
)

// ErrNothingAnalyzed is returned when no entry produced a prediction.
var ErrNothingAnalyzed = errors.New("nothing could be analyzed")

const DefaultWorkers = 4

// Progress is called once per finished entry, in input order.
type Progress func(done, total int, name string)

// Screener fans entries out to a fixed pool of workers. One entry's failure
// never aborts the batch.
type Screener struct {
	analyzer interfaces.Analyzer
	workers  int
	progress Progress
	recorder *metrics.Recorder
}

type Option func(*Screener)

// WithWorkers bounds the number of securities analyzed concurrently.
func WithWorkers(n int) Option {
	return func(s *Screener) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithProgress(p Progress) Option {
	return func(s *Screener) { s.progress = p }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Screener) { s.recorder = r }
}

func New(analyzer interfaces.Analyzer, opts ...Option) *Screener {
	s := &Screener{analyzer: analyzer, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type outcome struct {
	idx int
	sec types.Security
	row types.ScreenerRow
	ok  bool
}

// Run analyzes every entry and returns the successful rows in input order.
// On cancellation no further entries are dispatched and the rows completed
// so far are returned together with ctx.Err().
func (s *Screener) Run(ctx context.Context, entries []types.Security, market types.Market) (*types.ScreenReport, error) {
	start := time.Now()
	report := &types.ScreenReport{Total: len(entries)}

	processed := 0
	for o := range s.process(ctx, entries, market, nil) {
		processed++
		if o.ok {
			report.Rows = append(report.Rows, o.row)
		}
	}
	report.Analyzed = len(report.Rows)
	report.Skipped = processed - report.Analyzed
	report.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if report.Analyzed == 0 {
		return report, ErrNothingAnalyzed
	}
	return report, nil
}

// Stream emits rows in input order as they become available. The channel is
// closed when the batch is done or ctx is cancelled; calling Stream again
// starts a fresh pass.
func (s *Screener) Stream(ctx context.Context, entries []types.Security, market types.Market) <-chan types.ScreenerRow {
	rows := make(chan types.ScreenerRow)
	go func() {
		defer close(rows)
		for o := range s.process(ctx, entries, market, ctx.Done()) {
			if !o.ok {
				continue
			}
			select {
			case rows <- o.row:
			case <-ctx.Done():
				return
			}
		}
	}()
	return rows
}

// process dispatches entries to the worker pool and re-sequences outcomes by
// input index. Sends on the returned channel give up once abandon is closed;
// a nil abandon means the caller always drains.
func (s *Screener) process(ctx context.Context, entries []types.Security, market types.Market, abandon <-chan struct{}) <-chan outcome {
	jobs := make(chan int)
	raw := make(chan outcome, s.workers)
	ordered := make(chan outcome)

	go func() {
		defer close(jobs)
		for i := range entries {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				raw <- s.analyzeOne(ctx, i, entries[i], market)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(raw)
	}()

	go func() {
		defer close(ordered)
		pending := make(map[int]outcome)
		next, done := 0, 0
		emit := func(o outcome) bool {
			done++
			if s.progress != nil {
				s.progress(done, len(entries), o.sec.Name)
			}
			select {
			case ordered <- o:
				return true
			case <-abandon:
				return false
			}
		}
		live := true
		for o := range raw {
			if !live {
				continue
			}
			pending[o.idx] = o
			for live {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				live = emit(p)
			}
		}
		// cancellation can leave gaps; flush the rest in index order
		rest := make([]int, 0, len(pending))
		for idx := range pending {
			rest = append(rest, idx)
		}
		sort.Ints(rest)
		for _, idx := range rest {
			if !live || !emit(pending[idx]) {
				return
			}
		}
	}()

	return ordered
}

// analyzeOne is the per-entry failure boundary: errors, panics and
// non-predictions all become a skipped outcome.
func (s *Screener) analyzeOne(ctx context.Context, idx int, sec types.Security, market types.Market) (out outcome) {
	out = outcome{idx: idx, sec: sec}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "Screener entry panicked", "ticker", sec.Ticker, "panic", fmt.Sprint(r))
			s.recorder.RecordEntry(metrics.OutcomeFailed)
			out.ok = false
		}
	}()

	a, err := s.analyzer.Analyze(ctx, sec, market)
	if err != nil {
		logger.Debug(ctx, "Screener entry failed", "ticker", sec.Ticker, "error", err)
		s.recorder.RecordEntry(metrics.OutcomeFailed)
		return out
	}
	row, ok := a.Row()
	if !ok {
		logger.Debug(ctx, "Screener entry skipped", "ticker", sec.Ticker, "reason", a.Composite.Message)
		s.recorder.RecordEntry(metrics.OutcomeSkipped)
		return out
	}
	s.recorder.RecordEntry(metrics.OutcomeAnalyzed)
	out.row, out.ok = row, true
	return out
}

// Sort keys accepted by SortRows.
const (
	SortConfidence = "confidence"
	SortScore      = "score"
)

// SortRows orders rows in place by confidence (default) or composite score.
// Ties keep their input order.
func SortRows(rows []types.ScreenerRow, key string, desc bool) error {
	var val func(types.ScreenerRow) float64
	switch strings.ToLower(key) {
	case "", SortConfidence:
		val = func(r types.ScreenerRow) float64 { return r.Confidence }
	case SortScore:
		val = func(r types.ScreenerRow) float64 { return r.Score }
	default:
		return fmt.Errorf("unknown sort key %q", key)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return val(rows[i]) > val(rows[j])
		}
		return val(rows[i]) < val(rows[j])
	})
	return nil
}
