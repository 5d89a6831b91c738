package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"stock-predictor/internal/api"
	"stock-predictor/internal/types"
)

// NasdaqScreener lists every security traded on an exchange.
type NasdaqScreener struct {
	client *api.Client
	url    string
}

type screenerResponse struct {
	Data struct {
		Table struct {
			Rows []struct {
				Symbol string `json:"symbol"`
				Name   string `json:"name"`
			} `json:"rows"`
		} `json:"table"`
	} `json:"data"`
}

// Exchange returns a fetcher for "nyse" or "nasdaq".
func (n *NasdaqScreener) Exchange(exchange string) Fetcher {
	return func(ctx context.Context) ([]types.Security, error) {
		q := url.Values{}
		q.Set("tableType", "traded")
		q.Set("exchange", exchange)
		q.Set("limit", "10000")

		var resp screenerResponse
		err := n.client.GetJSON(ctx, n.url+"?"+q.Encode(), &resp, map[string]string{
			"User-Agent": wikiUserAgent,
			"Accept":     "application/json",
		})
		if err != nil {
			return nil, fmt.Errorf("nasdaq screener %s: %w", exchange, err)
		}

		out := make([]types.Security, 0, len(resp.Data.Table.Rows))
		for _, row := range resp.Data.Table.Rows {
			sym := strings.TrimSpace(row.Symbol)
			name := strings.TrimSpace(row.Name)
			if sym == "" || name == "" {
				continue
			}
			out = append(out, types.Security{Name: name, Ticker: strings.ReplaceAll(sym, "/", "-")})
		}
		return dedupe(out), nil
	}
}
