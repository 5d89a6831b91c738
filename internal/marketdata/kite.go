package marketdata

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-predictor/internal/logger"
	"stock-predictor/internal/types"
)

// ErrUnknownInstrument is returned when a symbol has no NSE instrument token.
var ErrUnknownInstrument = errors.New("unknown instrument")

// kiteAPI is the slice of the Kite Connect client used for daily candles.
type kiteAPI interface {
	GetInstrumentsByExchange(exchange string) (kiteconnect.Instruments, error)
	GetHistoricalData(instrumentToken int, interval string, fromDate time.Time, toDate time.Time, continuous bool, OI bool) ([]kiteconnect.HistoricalData, error)
}

type KiteParams struct {
	APIKey      string
	AccessToken string
	Exchange    string
	BaseURI     string
}

// KiteHistory serves price history for NSE symbols from Kite historical
// candles. Tickers may carry the ".NS" suffix used elsewhere in the module.
type KiteHistory struct {
	kc       kiteAPI
	exchange string
	mapper   *instrumentMapper
	now      func() time.Time

	loadMu sync.Mutex
}

func NewKiteHistory(p KiteParams) (*KiteHistory, error) {
	if p.APIKey == "" || p.AccessToken == "" {
		return nil, errors.New("kite: api key and access token are required")
	}
	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)
	if p.BaseURI != "" {
		kc.SetBaseURI(p.BaseURI)
	}
	return newKiteHistory(kc, p.Exchange), nil
}

func newKiteHistory(kc kiteAPI, exchange string) *KiteHistory {
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteHistory{
		kc:       kc,
		exchange: exchange,
		mapper:   newInstrumentMapper(),
		now:      time.Now,
	}
}

// FetchPriceHistory returns the last year of daily closes, oldest first.
// The Kite client is not context aware, so ctx is only checked up front.
func (k *KiteHistory) FetchPriceHistory(ctx context.Context, ticker string) (types.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol := KiteSymbol(ticker)

	token, err := k.token(ctx, symbol)
	if err != nil {
		return nil, err
	}

	to := k.now()
	candles, err := k.kc.GetHistoricalData(token, "day", to.AddDate(-1, 0, 0), to, false, false)
	if err != nil {
		return nil, fmt.Errorf("kite historical %s: %w", symbol, err)
	}

	series := make(types.PriceSeries, 0, len(candles))
	for _, c := range candles {
		if c.Close <= 0 {
			continue
		}
		series = append(series, types.PricePoint{Date: c.Date.Time, Close: c.Close})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("kite historical %s: no price data", symbol)
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

func (k *KiteHistory) token(ctx context.Context, symbol string) (int, error) {
	if t, ok := k.mapper.getToken(symbol); ok {
		return t, nil
	}

	k.loadMu.Lock()
	defer k.loadMu.Unlock()
	if k.mapper.size() == 0 {
		timer := logger.StartOperation(ctx, "kite.load_instruments", "exchange", k.exchange)
		instruments, err := k.kc.GetInstrumentsByExchange(k.exchange)
		if err != nil {
			timer.EndWithError(err)
			return 0, fmt.Errorf("kite instruments %s: %w", k.exchange, err)
		}
		for _, in := range instruments {
			k.mapper.addMapping(in.Tradingsymbol, in.InstrumentToken)
		}
		timer.End("instruments", len(instruments))
	}

	if t, ok := k.mapper.getToken(symbol); ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %s on %s", ErrUnknownInstrument, symbol, k.exchange)
}

// KiteSymbol strips the exchange suffix: "RELIANCE.NS" becomes "RELIANCE".
func KiteSymbol(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, suffix := range []string{".NS", ".BO"} {
		t = strings.TrimSuffix(t, suffix)
	}
	return t
}
