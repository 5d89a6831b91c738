package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"stock-predictor/internal/catalog"
	"stock-predictor/internal/types"
)

var rowHeader = []string{
	"Stock", "Ticker", "Action", "Confidence", "Score",
	"Tech Score", "Sentiment Score", "Fundamental Score",
	"P/E", "P/B", "ROE", "ROCE", "Piotroski", "D/E", "Current Ratio", "Market Cap", "CMP",
}

func rowFields(r types.ScreenerRow) []string {
	return []string{
		r.Stock,
		r.Ticker,
		string(r.Action),
		strconv.FormatFloat(r.Confidence, 'f', 1, 64),
		strconv.FormatFloat(r.Score, 'f', 3, 64),
		optFloat(r.TechScore, 3),
		optFloat(r.SentimentScore, 3),
		optFloat(r.FundamentalScore, 3),
		optFloat(r.PE, 2),
		optFloat(r.PB, 2),
		optFloat(r.ROE, 2),
		optFloat(r.ROCE, 2),
		optInt(r.Piotroski),
		optFloat(r.DebtToEquity, 2),
		optFloat(r.CurrentRatio, 2),
		optFloat(r.MarketCap, 0),
		optFloat(r.CMP, 2),
	}
}

func optFloat(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func printTable(w io.Writer, rows []types.ScreenerRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeTabbed(tw, rowHeader)
	for _, r := range rows {
		writeTabbed(tw, rowFields(r))
	}
	tw.Flush()
}

func writeTabbed(w io.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, f)
	}
	fmt.Fprintln(w)
}

// printCSV writes rows with blank cells for missing values.
func printCSV(w io.Writer, rows []types.ScreenerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rowHeader); err != nil {
		return err
	}
	for _, r := range rows {
		fields := rowFields(r)
		for i, f := range fields {
			if f == "-" {
				fields[i] = ""
			}
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAnalysis(w io.Writer, a *types.Analysis) {
	fmt.Fprintf(w, "%s (%s)", a.Security.Name, a.Security.Ticker)
	if a.Sector != "" {
		fmt.Fprintf(w, "  sector: %s", a.Sector)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Technical\t%s\n", describe(a.Technical.ScoreResult))
	if a.Technical.IsOK() {
		fmt.Fprintf(tw, "  price %.2f\tSMA %.2f / %.2f  RSI %.1f\n",
			a.Technical.CurrentPrice, a.Technical.SMAShort, a.Technical.SMALong, a.Technical.RSI)
	}
	fmt.Fprintf(tw, "Sentiment\t%s\n", describe(a.Sentiment.ScoreResult))
	if a.Sentiment.IsOK() {
		fmt.Fprintf(tw, "  headlines %d\tstock %.3f  sector %.3f  market %.3f\n",
			a.Sentiment.HeadlineCount, a.Sentiment.SecurityScore, a.Sentiment.SectorScore, a.Sentiment.MarketScore)
	}
	fmt.Fprintf(tw, "Fundamental\t%s\n", describe(a.Fundamental.ScoreResult))
	if a.Fundamental.IsOK() {
		fmt.Fprintf(tw, "  signals %d\t\n", a.Fundamental.AvailableSignals)
	}
	tw.Flush()

	km := a.KeyMetrics
	fmt.Fprintf(w, "P/E %s  P/B %s  ROE %s  ROCE %s  D/E %s  Piotroski %s\n",
		optFloat(km.PE, 2), optFloat(km.PriceToBook, 2), optFloat(km.ROELatest, 2),
		optFloat(km.ROCELatest, 2), optFloat(km.DebtToEquity, 2), optInt(km.Piotroski))

	c := a.Composite
	if !c.IsOK() {
		fmt.Fprintf(w, "\nNo prediction: %s\n", c.Message)
		return
	}
	fmt.Fprintf(w, "\n%s  confidence %.1f%%  score %.3f\n", c.Action, c.Confidence, c.Score)
}

func describe(r types.ScoreResult) string {
	switch {
	case r.IsOK():
		return strconv.FormatFloat(r.Score, 'f', 3, 64)
	case r.Message != "":
		return string(r.Status) + ": " + r.Message
	default:
		return string(r.Status)
	}
}

func printCatalogs(w io.Writer, infos []catalog.Info) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeTabbed(tw, []string{"Name", "Market", "Source", "Description"})
	for _, i := range infos {
		src := "built-in"
		if i.Remote {
			src = "remote"
		}
		writeTabbed(tw, []string{i.Name, string(i.Market), src, i.Description})
	}
	tw.Flush()
}

func printSecurities(w io.Writer, list []types.Security) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeTabbed(tw, []string{"Ticker", "Name"})
	for _, s := range list {
		writeTabbed(tw, []string{s.Ticker, s.Name})
	}
	tw.Flush()
	fmt.Fprintf(w, "%d entries\n", len(list))
}
