package config

import (
	"fmt"
	"os"

	"vehicle_valuation/pkg/models"

	"gopkg.in/yaml.v2"
)

// Config is the read-once configuration surface of the valuation engine.
// Loaded at process start and injected into components; nothing mutates it
// afterwards, which is what makes concurrent valuations lock-free.
type Config struct {
	Depreciation DepreciationConfig `yaml:"depreciation"`
	Usage        UsageConfig        `yaml:"usage"`
	Consensus    ConsensusConfig    `yaml:"consensus"`
	Transaction  TransactionConfig  `yaml:"transaction"`
	Mileage      map[models.FuelType]int `yaml:"annual_mileage_km"`
	Ownership    map[int]float64    `yaml:"ownership_multipliers"` // owner count -> multiplier; highest key is the 4+ bucket
	OnRoad       OnRoadConfig       `yaml:"on_road"`
	Sentiment    SentimentConfig    `yaml:"sentiment"`
	Registry     RegistryConfig     `yaml:"registry"`
}

// Bracket is one age segment of the depreciation schedule.
type Bracket struct {
	Label    string  `yaml:"label"`     // e.g. "0-1y"
	FromYear float64 `yaml:"from_year"` // inclusive lower bound
	ToYear   float64 `yaml:"to_year"`   // exclusive upper bound; <=0 means unbounded
	Rate     float64 `yaml:"rate"`      // annual rate, e.g. 0.15
}

type DepreciationConfig struct {
	Brackets []Bracket `yaml:"brackets"`
}

// UsageTier applies Rate per 10,000 km to the slice of positive odometer
// deviation inside the tier. Tiers are consumed in order.
type UsageTier struct {
	SpanKM int     `yaml:"span_km"` // width of the tier; <=0 means unbounded
	Rate   float64 `yaml:"rate"`    // percent per 10,000 km
}

type UsageConfig struct {
	Tiers []UsageTier `yaml:"tiers"`
	// The cliff is an absolute odometer threshold, not a deviation threshold:
	// crossing it costs CliffPenaltyPct exactly once.
	CliffOdometerKM int     `yaml:"cliff_odometer_km"`
	CliffPenaltyPct float64 `yaml:"cliff_penalty_pct"`
	PremiumPer10K   float64 `yaml:"premium_per_10k"` // under-driven bonus rate
	PremiumCapPct   float64 `yaml:"premium_cap_pct"`
	FloorMultiplier float64 `yaml:"floor_multiplier"`
	// Below TamperingKMPerYear * age the reading is treated as a tampering
	// risk: the premium deviation is capped instead of rewarded.
	TamperingKMPerYear int `yaml:"tampering_km_per_year"`
}

type ConsensusConfig struct {
	TightAgreementPct float64 `yaml:"tight_agreement_pct"` // HIGH/VERY_HIGH band
	LooseAgreementPct float64 `yaml:"loose_agreement_pct"` // MEDIUM band
	FailureSpreadPct  float64 `yaml:"failure_spread_pct"`  // beyond this -> FAILED
	OutlierFactor     float64 `yaml:"outlier_factor"`      // quotes beyond factor x median are excluded
}

type TransactionConfig struct {
	DealerMargin      float64 `yaml:"dealer_margin"`
	WholesaleDiscount float64 `yaml:"wholesale_discount"`
	TaxRate           float64 `yaml:"tax_rate"` // GST on dealer margin
	TradeInBufferPct  float64 `yaml:"trade_in_buffer_pct"` // procurement negotiation room
}

// OnRoadConfig carries the year-indexed tax/fee schedule used when the
// baseline must be expressed as an on-road price. The schedule of the
// baseline's reference year applies, never the request year.
type OnRoadConfig struct {
	RoadTaxRateByYear map[int]float64 `yaml:"road_tax_rate_by_year"`
	DefaultRoadTax    float64         `yaml:"default_road_tax"`
	FixedChargesByYear map[int]float64 `yaml:"fixed_charges_by_year"` // registration + cess + smart card, flattened
	DefaultFixedCharges float64        `yaml:"default_fixed_charges"`
	// Insurance bands: first-year comprehensive premium as a fraction of
	// ex-showroom, chosen by vehicle value.
	InsuranceBands []InsuranceBand `yaml:"insurance_bands"`
	InsuranceYearDrift float64     `yaml:"insurance_year_drift"` // per-year rate inflation from BaseYear
	BaseYear           int         `yaml:"base_year"`
}

type InsuranceBand struct {
	UpToPrice float64 `yaml:"up_to_price"` // <=0 means unbounded
	Rate      float64 `yaml:"rate"`
}

type SentimentConfig struct {
	// FuelTrends: fuel -> valuation year -> multiplier.
	FuelTrends map[models.FuelType]map[int]float64 `yaml:"fuel_trends"`
	// SegmentMultipliers: segment key -> multiplier.
	SegmentMultipliers map[string]float64 `yaml:"segment_multipliers"`
	// BrandIndex: lowercase make -> resale multiplier.
	BrandIndex map[string]float64 `yaml:"brand_index"`
	// EconomicEvents: year -> additive impact (e.g. -0.10 for a crash year).
	EconomicEvents map[int]EconomicEvent `yaml:"economic_events"`
}

type EconomicEvent struct {
	Event  string  `yaml:"event"`
	Impact float64 `yaml:"impact"`
}

type RegistryConfig struct {
	// DiscontinuedModels: lowercase "make model" keys of models out of
	// production. Maintained as versioned data, not code.
	DiscontinuedModels []string `yaml:"discontinued_models" json:"discontinued_models"`
	// SegmentMap: lowercase model token -> segment key.
	SegmentMap map[string]string `yaml:"segment_map" json:"segment_map"`
	// SegmentBasePrices: segment fallback estimator seed prices (current year).
	SegmentBasePrices map[string]float64 `yaml:"segment_base_prices" json:"segment_base_prices"`
	// HistoricalDeflation: per-year price deflation used to back-project a
	// current price to an earlier reference year when no quotes exist.
	HistoricalDeflation float64 `yaml:"historical_deflation" json:"historical_deflation"`
}

// Load reads the YAML config file and fills any gaps with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run on.
func (c *Config) Validate() error {
	if len(c.Depreciation.Brackets) == 0 {
		return fmt.Errorf("depreciation schedule is empty")
	}
	prev := 0.0
	for i, b := range c.Depreciation.Brackets {
		if b.Rate <= 0 || b.Rate >= 1 {
			return fmt.Errorf("bracket %d: rate %.3f out of (0,1)", i, b.Rate)
		}
		if b.FromYear != prev {
			return fmt.Errorf("bracket %d: starts at %.1f, expected %.1f (brackets must be contiguous)", i, b.FromYear, prev)
		}
		if b.ToYear > 0 && b.ToYear <= b.FromYear {
			return fmt.Errorf("bracket %d: empty range", i)
		}
		prev = b.ToYear
	}
	last := c.Depreciation.Brackets[len(c.Depreciation.Brackets)-1]
	if last.ToYear > 0 {
		return fmt.Errorf("final depreciation bracket must be unbounded")
	}
	if c.Usage.FloorMultiplier <= 0 {
		return fmt.Errorf("usage floor multiplier must be positive")
	}
	if c.Transaction.DealerMargin+c.Transaction.WholesaleDiscount >= 1 {
		return fmt.Errorf("dealer margin + wholesale discount must stay below 100%%")
	}
	for fuel := range c.Mileage {
		if c.Mileage[fuel] <= 0 {
			return fmt.Errorf("annual mileage for %s must be positive", fuel)
		}
	}
	return nil
}
