package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stock-predictor/internal/api"
	"stock-predictor/internal/types"
)

const wikiUserAgent = "Mozilla/5.0 (compatible; StockPredictor/1.0)"

// Wikipedia reads constituent tables from index articles.
type Wikipedia struct {
	client *api.Client
}

// Table returns a fetcher for the first table on pageURL that has one of
// nameCols and one of symbolCols in its header row.
func (w *Wikipedia) Table(pageURL string, nameCols, symbolCols []string) Fetcher {
	return func(ctx context.Context) ([]types.Security, error) {
		resp, err := w.client.GET(ctx, pageURL, map[string]string{"User-Agent": wikiUserAgent})
		if err != nil {
			return nil, fmt.Errorf("wikipedia %s: %w", pageURL, err)
		}
		return ParseWikiTable(bytes.NewReader(resp.Body), nameCols, symbolCols)
	}
}

// ParseWikiTable extracts (name, ticker) pairs. Class-share dots become
// dashes ("BRK.B" to "BRK-B"), which is how the quote endpoints spell them.
func ParseWikiTable(r io.Reader, nameCols, symbolCols []string) ([]types.Security, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create goquery document: %w", err)
	}

	var out []types.Security
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var headers []string
		table.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, cleanCell(th.Text()))
		})
		nameIdx := indexOf(headers, nameCols)
		symIdx := indexOf(headers, symbolCols)
		if nameIdx < 0 || symIdx < 0 {
			return true
		}

		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Children()
			if tr.Find("td").Length() == 0 || cells.Length() <= nameIdx || cells.Length() <= symIdx {
				return
			}
			name := cleanCell(cells.Eq(nameIdx).Text())
			sym := cleanCell(cells.Eq(symIdx).Text())
			if name == "" || sym == "" {
				return
			}
			out = append(out, types.Security{Name: name, Ticker: strings.ReplaceAll(sym, ".", "-")})
		})
		return len(out) == 0
	})

	if len(out) == 0 {
		return nil, fmt.Errorf("no table with columns %v and %v", nameCols, symbolCols)
	}
	return dedupe(out), nil
}

func cleanCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func indexOf(headers, want []string) int {
	for _, w := range want {
		for i, h := range headers {
			if strings.EqualFold(h, w) {
				return i
			}
		}
	}
	return -1
}
