package store

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"stock-predictor/internal/cache"
	"stock-predictor/internal/catalog"
	"stock-predictor/internal/fundamental"
	"stock-predictor/internal/marketdata"
	"stock-predictor/internal/news"
	"stock-predictor/internal/types"
)

const weightTolerance = 1e-6

type Config struct {
	Scoring   types.ScoringConfig `yaml:"scoring"`
	Sentiment struct {
		Analyzer string `yaml:"analyzer" default:"vader" validate:"oneof=vader lexicon"`
	} `yaml:"sentiment"`
	Labels   fundamental.Labels `yaml:"labels"`
	Data     marketdata.Config  `yaml:"data"`
	News     news.Config        `yaml:"news"`
	Cache    cache.Config       `yaml:"cache"`
	Catalogs catalog.URLs       `yaml:"catalogs"`
	Screener struct {
		Workers int    `yaml:"workers" default:"4" validate:"gte=1,lte=64"`
		Market  string `yaml:"market" default:"India" validate:"oneof=India US"`
		Catalog string `yaml:"catalog" default:"nifty50"`
		SortBy  string `yaml:"sort_by" default:"confidence" validate:"oneof=confidence score"`
		Limit   int    `yaml:"limit" validate:"gte=0"`
	} `yaml:"screener"`
	Server struct {
		Addr            string        `yaml:"addr" default:":8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"5m"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Schedule struct {
		Cron    string `yaml:"cron" default:"30 16 * * 1-5"`
		Catalog string `yaml:"catalog"`
		Market  string `yaml:"market" validate:"omitempty,oneof=India US"`
	} `yaml:"schedule"`
}

// Default returns a config with every default applied.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Validate runs the struct tag rules and the cross-field checks.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	s := c.Scoring
	sums := []struct {
		name string
		sum  float64
	}{
		{"scoring.technical", s.Technical.SMAWeight + s.Technical.RSIWeight + s.Technical.MomentumWeight},
		{"scoring.technical momentum", s.Technical.MomentumShortWeight + s.Technical.MomentumLongWeight},
		{"scoring.sentiment", s.Sentiment.SecurityWeight + s.Sentiment.SectorWeight + s.Sentiment.MarketWeight},
		{"scoring.fundamental", s.Fundamental.RevenueWeight + s.Fundamental.MarginWeight + s.Fundamental.ProfitWeight +
			s.Fundamental.DebtEquityWeight + s.Fundamental.CurrentRatioWeight + s.Fundamental.ROEWeight},
		{"scoring.composite", s.Composite.TechnicalWeight + s.Composite.FundamentalWeight + s.Composite.SentimentWeight},
	}
	for _, w := range sums {
		if math.Abs(w.sum-1) > weightTolerance {
			return fmt.Errorf("%s weights must sum to 1, got %.6f", w.name, w.sum)
		}
	}

	if s.Composite.SellThreshold >= s.Composite.BuyThreshold {
		return fmt.Errorf("scoring.composite.sell_threshold (%.2f) must be below buy_threshold (%.2f)",
			s.Composite.SellThreshold, s.Composite.BuyThreshold)
	}
	if s.Technical.RSIOversold >= s.Technical.RSIOverbought {
		return errors.New("scoring.technical.rsi_oversold must be below rsi_overbought")
	}
	if c.Data.PriceSource == "kite" && (c.Data.KiteAPIKey == "" || c.Data.KiteAccessToken == "") {
		return errors.New("data.price_source kite needs KITE_API_KEY and KITE_ACCESS_TOKEN")
	}
	return nil
}

// StatementLabels returns the configured label synonyms, falling back to the
// defaults concept by concept.
func (c *Config) StatementLabels() fundamental.Labels {
	l := fundamental.DefaultLabels()
	o := c.Labels
	for _, p := range []struct {
		dst *[]string
		src []string
	}{
		{&l.Revenue, o.Revenue},
		{&l.NetIncome, o.NetIncome},
		{&l.TotalDebt, o.TotalDebt},
		{&l.Equity, o.Equity},
		{&l.CurrentAssets, o.CurrentAssets},
		{&l.CurrentLiabilities, o.CurrentLiabilities},
		{&l.EBIT, o.EBIT},
		{&l.TotalAssets, o.TotalAssets},
		{&l.OperatingCashFlow, o.OperatingCashFlow},
		{&l.LongTermDebt, o.LongTermDebt},
		{&l.Shares, o.Shares},
		{&l.GrossProfit, o.GrossProfit},
	} {
		if len(p.src) > 0 {
			*p.dst = p.src
		}
	}
	return l
}

// LoadConfig reads path, fills defaults, applies environment overrides and
// validates. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("KITE_API_KEY"); v != "" {
		c.Data.KiteAPIKey = v
	}
	if v := os.Getenv("KITE_ACCESS_TOKEN"); v != "" {
		c.Data.KiteAccessToken = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("PREDICTOR_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PREDICTOR_WORKERS: %w", err)
		}
		c.Screener.Workers = n
	}
	return nil
}
