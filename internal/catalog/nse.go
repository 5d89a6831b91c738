package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"stock-predictor/internal/api"
	"stock-predictor/internal/types"
)

// NSE reads the exchange's EQUITY_L.csv listing.
type NSE struct {
	client *api.Client
	url    string
}

func (n *NSE) Fetch(ctx context.Context) ([]types.Security, error) {
	resp, err := n.client.GET(ctx, n.url, api.NSEHeaders())
	if err != nil {
		return nil, fmt.Errorf("nse equities: %w", err)
	}
	return ParseNSEEquities(bytes.NewReader(resp.Body))
}

// ParseNSEEquities keeps EQ-series rows and maps them to "SYMBOL.NS".
// Header names are matched after trimming, since the file pads some of them.
func ParseNSEEquities(r io.Reader) ([]types.Security, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	symIdx, ok1 := col["SYMBOL"]
	nameIdx, ok2 := col["NAME OF COMPANY"]
	seriesIdx, ok3 := col["SERIES"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var out []types.Security
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) <= symIdx || len(rec) <= nameIdx || len(rec) <= seriesIdx {
			continue
		}
		symbol := strings.TrimSpace(rec[symIdx])
		name := strings.TrimSpace(rec[nameIdx])
		if symbol == "" || name == "" || !strings.Contains(strings.TrimSpace(rec[seriesIdx]), "EQ") {
			continue
		}
		out = append(out, types.Security{Name: name, Ticker: symbol + ".NS"})
	}
	return dedupe(out), nil
}
