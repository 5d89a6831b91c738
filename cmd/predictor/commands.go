package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock-predictor/internal/catalog"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/scheduler"
	"stock-predictor/internal/screener"
	"stock-predictor/internal/server"
	"stock-predictor/internal/types"
)

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		ticker, name, market string
		asJSON               bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a single security",
		Example: `  predictor analyze --ticker RELIANCE.NS --name "Reliance Industries"
  predictor analyze --ticker AAPL --market US --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := resolveMarket(market, c.cfg.Screener.Market)
			if err != nil {
				return err
			}
			a, err := newApp(ctx, c.cfg, 1, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if name == "" {
				name = ticker
			}
			res, err := a.engine.Analyze(ctx, types.Security{Name: name, Ticker: strings.TrimSpace(ticker)}, m)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(os.Stdout, res)
			}
			printAnalysis(os.Stdout, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&ticker, "ticker", "", "ticker symbol, e.g. INFY.NS or AAPL")
	cmd.Flags().StringVar(&name, "name", "", "display name used for news queries (defaults to the ticker)")
	cmd.Flags().StringVar(&market, "market", "", "India or US (defaults to screener.market)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	_ = cmd.MarkFlagRequired("ticker")
	return cmd
}

func newScreenCmd(c *cli) *cobra.Command {
	var (
		catalogName, market, sortBy string
		tickers                     []string
		limit, workers              int
		asc, asJSON, asCSV, quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen a catalog or a ticker list and rank the results",
		Example: `  predictor screen --catalog nifty50 --limit 10
  predictor screen --tickers AAPL,MSFT,NVDA --market US --csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if asJSON && asCSV {
				return errors.New("--json and --csv are mutually exclusive")
			}
			if sortBy == "" {
				sortBy = c.cfg.Screener.SortBy
			}
			if limit == 0 {
				limit = c.cfg.Screener.Limit
			}

			var progress screener.Progress
			if !quiet && !asJSON && !asCSV {
				progress = func(done, total int, name string) {
					fmt.Fprintf(os.Stderr, "\r[%d/%d] %-40s", done, total, name)
					if done == total {
						fmt.Fprintln(os.Stderr)
					}
				}
			}
			a, err := newApp(ctx, c.cfg, workers, progress)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(tickers) == 0 && catalogName == "" {
				catalogName = c.cfg.Screener.Catalog
			}
			entries, m, err := resolveEntries(ctx, a.catalogs, catalogName, tickers, market, c.cfg.Screener.Market)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			report, err := a.observed.Run(ctx, entries, m)
			if errors.Is(err, screener.ErrNothingAnalyzed) {
				fmt.Println(screener.ErrNothingAnalyzed.Error())
				return err
			}
			if err != nil && report == nil {
				return err
			}
			if serr := screener.SortRows(report.Rows, sortBy, !asc); serr != nil {
				return serr
			}

			switch {
			case asJSON:
				if perr := printJSON(os.Stdout, report); perr != nil {
					return perr
				}
			case asCSV:
				if perr := printCSV(os.Stdout, report.Rows); perr != nil {
					return perr
				}
			default:
				printTable(os.Stdout, report.Rows)
				fmt.Printf("\n%d analyzed, %d skipped of %d in %s\n",
					report.Analyzed, report.Skipped, report.Total, report.Duration.Round(time.Millisecond))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&catalogName, "catalog", "", "catalog to screen (defaults to screener.catalog)")
	cmd.Flags().StringSliceVar(&tickers, "tickers", nil, "comma separated tickers, appended to the catalog")
	cmd.Flags().StringVar(&market, "market", "", "India or US (defaults to the catalog's market)")
	cmd.Flags().IntVar(&limit, "limit", 0, "screen only the first N entries")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent analyses (defaults to screener.workers)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "confidence or score")
	cmd.Flags().BoolVar(&asc, "asc", false, "sort ascending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print the rows as CSV")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "hide progress")
	return cmd
}

func newCatalogCmd(c *cli) *cobra.Command {
	var (
		name   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalogs or print the entries of one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, c.cfg, 1, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if name == "" {
				infos := a.catalogs.List()
				if asJSON {
					return printJSON(os.Stdout, infos)
				}
				printCatalogs(os.Stdout, infos)
				return nil
			}

			list, err := a.catalogs.Load(ctx, name)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(os.Stdout, list)
			}
			printSecurities(os.Stdout, list)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "catalog to print (lists all catalogs when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, c.cfg, 0, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			sc := c.cfg.Server
			if addr == "" {
				addr = sc.Addr
			}
			srv := server.New(server.Config{
				Addr:            addr,
				ReadTimeout:     sc.ReadTimeout,
				WriteTimeout:    sc.WriteTimeout,
				ShutdownTimeout: sc.ShutdownTimeout,
			}, server.Deps{
				Analyzer: a.engine,
				Screener: a.observed,
				Streamer: a.screener,
				Catalogs: a.catalogs,
				Metrics:  a.metrics,
			})
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	return cmd
}

func newWatchCmd(c *cli) *cobra.Command {
	var (
		schedule, catalogName, market string
		now                           bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Screen a catalog on a cron schedule",
		Example: `  predictor watch --schedule "30 16 * * 1-5" --catalog nifty50
  predictor watch --schedule @hourly --catalog dow30 --now`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc := c.cfg.Schedule
			if schedule == "" {
				schedule = sc.Cron
			}
			if catalogName == "" {
				catalogName = firstNonEmpty(sc.Catalog, c.cfg.Screener.Catalog)
			}

			a, err := newApp(ctx, c.cfg, 0, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			fallback := firstNonEmpty(sc.Market, c.cfg.Screener.Market)
			if info, ok := a.catalogs.Info(catalogName); ok && market == "" {
				fallback = string(info.Market)
			}
			m, err := resolveMarket(market, fallback)
			if err != nil {
				return err
			}

			job := scheduler.Job{
				Catalog: catalogName,
				Market:  m,
				SortBy:  c.cfg.Screener.SortBy,
				Limit:   c.cfg.Screener.Limit,
			}
			sched := scheduler.New(ctx, a.catalogs, a.observed, reportDecisions)
			if err := sched.Add(schedule, job); err != nil {
				return err
			}
			if now {
				sched.RunNow(job)
			}
			sched.Start()
			logger.Info(ctx, "Watching", "catalog", catalogName, "market", m, "next_run", sched.Next())

			<-ctx.Done()
			sched.Stop()
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron spec (defaults to schedule.cron)")
	cmd.Flags().StringVar(&catalogName, "catalog", "", "catalog to screen")
	cmd.Flags().StringVar(&market, "market", "", "India or US (defaults to the catalog's market)")
	cmd.Flags().BoolVar(&now, "now", false, "run once immediately before waiting for the schedule")
	return cmd
}

// reportDecisions logs every ranked row and prints the table.
func reportDecisions(ctx context.Context, job scheduler.Job, report *types.ScreenReport, err error) {
	if err != nil && report == nil {
		logger.ErrorWithErr(ctx, "Scheduled screen failed", err, "catalog", job.Catalog)
		return
	}
	for _, row := range report.Rows {
		logger.Decision(ctx, row.Ticker, string(row.Action), row.Confidence, "scheduled screen",
			"catalog", job.Catalog,
			"score", row.Score,
		)
	}
	if len(report.Rows) == 0 {
		fmt.Println(screener.ErrNothingAnalyzed.Error())
		return
	}
	printTable(os.Stdout, report.Rows)
}

// resolveEntries loads the catalog, appends explicit tickers and picks the
// market: the flag, then the catalog's own market, then fallback.
func resolveEntries(ctx context.Context, reg *catalog.Registry, name string, tickers []string, market, fallback string) ([]types.Security, types.Market, error) {
	var entries []types.Security
	if name != "" {
		list, err := reg.Load(ctx, name)
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, list...)
		if info, ok := reg.Info(name); ok {
			fallback = string(info.Market)
		}
	}
	for _, t := range tickers {
		if t = strings.TrimSpace(t); t != "" {
			entries = append(entries, types.Security{Name: t, Ticker: t})
		}
	}
	m, err := resolveMarket(market, fallback)
	if err != nil {
		return nil, "", err
	}
	return entries, m, nil
}

func resolveMarket(flag, fallback string) (types.Market, error) {
	return types.ParseMarket(firstNonEmpty(flag, fallback))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
