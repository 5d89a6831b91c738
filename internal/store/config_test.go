package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"stock-predictor/internal/fundamental"
	"stock-predictor/internal/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(c.Scoring, types.DefaultScoringConfig()) {
		t.Errorf("expected default scoring config, got %+v", c.Scoring)
	}
	if c.Screener.Workers != 4 || c.Screener.Market != "India" || c.Cache.Backend != "memory" {
		t.Errorf("unexpected defaults %+v / %+v", c.Screener, c.Cache)
	}
	if c.Server.WriteTimeout != 5*time.Minute || c.News.PerScope != 10 {
		t.Errorf("unexpected duration or news defaults: %v %d", c.Server.WriteTimeout, c.News.PerScope)
	}
	if c.Sentiment.Analyzer != "vader" || c.Data.PriceSource != "yahoo" {
		t.Errorf("unexpected analyzer/source defaults %s %s", c.Sentiment.Analyzer, c.Data.PriceSource)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	p := writeConfig(t, `
scoring:
  composite:
    technical_weight: 0.5
    fundamental_weight: 0.3
    sentiment_weight: 0.2
    buy_threshold: 0.25
screener:
  market: US
  catalog: sp500
cache:
  backend: file
  dir: /tmp/predictor
labels:
  revenue: ["Net Sales"]
`)
	c, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Scoring.Composite.TechnicalWeight != 0.5 || c.Scoring.Composite.BuyThreshold != 0.25 {
		t.Errorf("expected overrides applied, got %+v", c.Scoring.Composite)
	}
	if c.Scoring.Composite.SellThreshold != -0.3 {
		t.Errorf("expected default sell threshold kept, got %v", c.Scoring.Composite.SellThreshold)
	}
	if c.Scoring.Technical.LongWindow != 50 {
		t.Errorf("expected default long window, got %d", c.Scoring.Technical.LongWindow)
	}
	if c.Screener.Market != "US" || c.Cache.Backend != "file" {
		t.Errorf("unexpected screener/cache %+v %+v", c.Screener, c.Cache)
	}

	l := c.StatementLabels()
	if !reflect.DeepEqual(l.Revenue, []string{"Net Sales"}) {
		t.Errorf("expected revenue override, got %v", l.Revenue)
	}
	if !reflect.DeepEqual(l.NetIncome, fundamental.DefaultLabels().NetIncome) {
		t.Errorf("expected default net income labels, got %v", l.NetIncome)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"weights": `
scoring:
  composite:
    technical_weight: 0.6
    fundamental_weight: 0.3
    sentiment_weight: 0.25
`,
		"analyzer": `
sentiment:
  analyzer: gpt
`,
		"market": `
screener:
  market: EU
`,
		"kite": `
data:
  price_source: kite
`,
		"yaml": "scoring: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("KITE_API_KEY", "")
			t.Setenv("KITE_ACCESS_TOKEN", "")
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Errorf("expected %s config to be rejected", name)
			}
		})
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("KITE_API_KEY", "key")
	t.Setenv("KITE_ACCESS_TOKEN", "token")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("PREDICTOR_WORKERS", "8")

	c, err := LoadConfig(writeConfig(t, "data:\n  price_source: kite\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Data.KiteAPIKey != "key" || c.Data.KiteAccessToken != "token" {
		t.Errorf("expected kite credentials from env, got %+v", c.Data)
	}
	if c.Cache.RedisAddr != "redis:6380" || c.Screener.Workers != 8 {
		t.Errorf("expected env overrides, got %s %d", c.Cache.RedisAddr, c.Screener.Workers)
	}

	t.Setenv("PREDICTOR_WORKERS", "many")
	if _, err := LoadConfig(writeConfig(t, "")); err == nil || !strings.Contains(err.Error(), "PREDICTOR_WORKERS") {
		t.Errorf("expected PREDICTOR_WORKERS error, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}
