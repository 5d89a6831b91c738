// Package scheduler runs catalog screens on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/screener"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// Job is one scheduled screen.
type Job struct {
	Catalog string
	Market  types.Market
	SortBy  string
	Limit   int
}

// Sink receives the outcome of every run. report may be partial or nil when
// err is set.
type Sink func(ctx context.Context, job Job, report *types.ScreenReport, err error)

// Scheduler owns a cron instance. Runs of the same job never overlap; a tick
// that arrives while the previous run is still going is skipped.
type Scheduler struct {
	cron     *cron.Cron
	catalogs interfaces.Catalog
	screener interfaces.Screener
	sink     Sink
	ctx      context.Context

	mu      sync.Mutex
	last    *types.ScreenReport
	lastRun time.Time
}

func New(ctx context.Context, catalogs interfaces.Catalog, scr interfaces.Screener, sink Sink) *Scheduler {
	log := cronLogger{ctx: ctx}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(log),
			cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		),
		catalogs: catalogs,
		screener: scr,
		sink:     sink,
		ctx:      ctx,
	}
}

// Add registers job under a standard five-field cron spec or a descriptor
// such as "@daily".
func (s *Scheduler) Add(spec string, job Job) error {
	if job.Market == "" {
		job.Market = types.MarketIndia
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunNow(job) }); err != nil {
		return fmt.Errorf("register %s screen %q: %w", job.Catalog, spec, err)
	}
	logger.Info(s.ctx, "Scheduled screen", "catalog", job.Catalog, "market", job.Market, "cron", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(s.ctx, "Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the schedule and waits for a running screen to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info(s.ctx, "Scheduler stopped")
}

// Next reports when the earliest job fires next. Zero before Start.
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if !e.Next.IsZero() && (next.IsZero() || e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

// Last returns the most recent report and when it was produced.
func (s *Scheduler) Last() (*types.ScreenReport, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastRun
}

// RunNow executes job synchronously and hands the outcome to the sink.
func (s *Scheduler) RunNow(job Job) (*types.ScreenReport, error) {
	ctx, span := trace.StartSpan(s.ctx, "scheduler.run")
	defer span.End()

	report, err := s.run(ctx, job)
	if report != nil {
		s.mu.Lock()
		s.last, s.lastRun = report, time.Now()
		s.mu.Unlock()
	}
	if s.sink != nil {
		s.sink(ctx, job, report, err)
	}
	return report, err
}

func (s *Scheduler) run(ctx context.Context, job Job) (*types.ScreenReport, error) {
	entries, err := s.catalogs.Load(ctx, job.Catalog)
	if err != nil {
		logger.ErrorWithErr(ctx, "Scheduled screen could not load catalog", err, "catalog", job.Catalog)
		return nil, err
	}
	if job.Limit > 0 && len(entries) > job.Limit {
		entries = entries[:job.Limit]
	}

	report, err := s.screener.Run(ctx, entries, job.Market)
	if report != nil {
		if serr := screener.SortRows(report.Rows, job.SortBy, true); serr != nil && err == nil {
			err = serr
		}
	}
	return report, err
}

// cronLogger routes cron's own messages through the structured logger.
type cronLogger struct {
	ctx context.Context
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(l.ctx, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.ErrorWithErr(l.ctx, "cron: "+msg, err, keysAndValues...)
}
