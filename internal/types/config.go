package types

// ScoringConfig carries every weight and threshold used by the scorers and
// the composite predictor. It is passed by value so callers can override
// fields for a single run without touching shared state.
type ScoringConfig struct {
	Technical   TechnicalConfig   `yaml:"technical" json:"technical"`
	Sentiment   SentimentConfig   `yaml:"sentiment" json:"sentiment"`
	Fundamental FundamentalConfig `yaml:"fundamental" json:"fundamental"`
	Composite   CompositeConfig   `yaml:"composite" json:"composite"`
}

type TechnicalConfig struct {
	ShortWindow int `yaml:"short_window" json:"short_window" default:"20" validate:"gt=0"`
	LongWindow  int `yaml:"long_window" json:"long_window" default:"50" validate:"gtfield=ShortWindow"`
	RSIPeriod   int `yaml:"rsi_period" json:"rsi_period" default:"14" validate:"gt=0"`

	RSIOverbought float64 `yaml:"rsi_overbought" json:"rsi_overbought" default:"70" validate:"gt=50,lt=100"`
	RSIOversold   float64 `yaml:"rsi_oversold" json:"rsi_oversold" default:"30" validate:"gt=0,lt=50"`

	MomentumShort       int     `yaml:"momentum_short" json:"momentum_short" default:"5" validate:"gt=0"`
	MomentumLong        int     `yaml:"momentum_long" json:"momentum_long" default:"20" validate:"gtefield=MomentumShort"`
	MomentumShortWeight float64 `yaml:"momentum_short_weight" json:"momentum_short_weight" default:"0.6" validate:"gte=0,lte=1"`
	MomentumLongWeight  float64 `yaml:"momentum_long_weight" json:"momentum_long_weight" default:"0.4" validate:"gte=0,lte=1"`
	MomentumScale       float64 `yaml:"momentum_scale" json:"momentum_scale" default:"5" validate:"gt=0"`
	SMAScale            float64 `yaml:"sma_scale" json:"sma_scale" default:"10" validate:"gt=0"`

	SMAWeight      float64 `yaml:"sma_weight" json:"sma_weight" default:"0.40" validate:"gte=0,lte=1"`
	RSIWeight      float64 `yaml:"rsi_weight" json:"rsi_weight" default:"0.35" validate:"gte=0,lte=1"`
	MomentumWeight float64 `yaml:"momentum_weight" json:"momentum_weight" default:"0.25" validate:"gte=0,lte=1"`
}

type SentimentConfig struct {
	SecurityWeight float64 `yaml:"security_weight" json:"security_weight" default:"0.50" validate:"gte=0,lte=1"`
	SectorWeight   float64 `yaml:"sector_weight" json:"sector_weight" default:"0.30" validate:"gte=0,lte=1"`
	MarketWeight   float64 `yaml:"market_weight" json:"market_weight" default:"0.20" validate:"gte=0,lte=1"`
}

type FundamentalConfig struct {
	RevenueWeight      float64 `yaml:"revenue_weight" json:"revenue_weight" default:"0.20" validate:"gte=0,lte=1"`
	MarginWeight       float64 `yaml:"margin_weight" json:"margin_weight" default:"0.15" validate:"gte=0,lte=1"`
	ProfitWeight       float64 `yaml:"profit_weight" json:"profit_weight" default:"0.20" validate:"gte=0,lte=1"`
	DebtEquityWeight   float64 `yaml:"debt_equity_weight" json:"debt_equity_weight" default:"0.20" validate:"gte=0,lte=1"`
	CurrentRatioWeight float64 `yaml:"current_ratio_weight" json:"current_ratio_weight" default:"0.10" validate:"gte=0,lte=1"`
	ROEWeight          float64 `yaml:"roe_weight" json:"roe_weight" default:"0.15" validate:"gte=0,lte=1"`
	GrowthScale        float64 `yaml:"growth_scale" json:"growth_scale" default:"5" validate:"gt=0"`
}

type CompositeConfig struct {
	TechnicalWeight   float64 `yaml:"technical_weight" json:"technical_weight" default:"0.45" validate:"gte=0,lte=1"`
	FundamentalWeight float64 `yaml:"fundamental_weight" json:"fundamental_weight" default:"0.30" validate:"gte=0,lte=1"`
	SentimentWeight   float64 `yaml:"sentiment_weight" json:"sentiment_weight" default:"0.25" validate:"gte=0,lte=1"`
	BuyThreshold      float64 `yaml:"buy_threshold" json:"buy_threshold" default:"0.3" validate:"gt=0,lte=1"`
	SellThreshold     float64 `yaml:"sell_threshold" json:"sell_threshold" default:"-0.3" validate:"gte=-1,lt=0"`
	ConfidenceFloor   float64 `yaml:"confidence_floor" json:"confidence_floor" default:"5" validate:"gte=0,lte=100"`
}

// DefaultScoringConfig returns the stock weights and thresholds.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Technical: TechnicalConfig{
			ShortWindow:         20,
			LongWindow:          50,
			RSIPeriod:           14,
			RSIOverbought:       70,
			RSIOversold:         30,
			MomentumShort:       5,
			MomentumLong:        20,
			MomentumShortWeight: 0.6,
			MomentumLongWeight:  0.4,
			MomentumScale:       5,
			SMAScale:            10,
			SMAWeight:           0.40,
			RSIWeight:           0.35,
			MomentumWeight:      0.25,
		},
		Sentiment: SentimentConfig{
			SecurityWeight: 0.50,
			SectorWeight:   0.30,
			MarketWeight:   0.20,
		},
		Fundamental: FundamentalConfig{
			RevenueWeight:      0.20,
			MarginWeight:       0.15,
			ProfitWeight:       0.20,
			DebtEquityWeight:   0.20,
			CurrentRatioWeight: 0.10,
			ROEWeight:          0.15,
			GrowthScale:        5,
		},
		Composite: CompositeConfig{
			TechnicalWeight:   0.45,
			FundamentalWeight: 0.30,
			SentimentWeight:   0.25,
			BuyThreshold:      0.3,
			SellThreshold:     -0.3,
			ConfidenceFloor:   5,
		},
	}
}
