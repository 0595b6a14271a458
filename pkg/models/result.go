package models

// ConditionGrade is the four-band grading of the inspection score.
type ConditionGrade string

const (
	GradeExcellent ConditionGrade = "Excellent"
	GradeVeryGood  ConditionGrade = "Very Good"
	GradeGood      ConditionGrade = "Good"
	GradeFair      ConditionGrade = "Fair"
)

// BaselineKind records which reference price depreciation was applied to.
type BaselineKind string

const (
	BaselineCurrentNew       BaselineKind = "current_new"       // present-day new-vehicle price
	BaselineOriginalPurchase BaselineKind = "original_purchase" // purchase-year price (discontinued models)
)

// DepreciationStep is one age bracket's contribution to total depreciation.
type DepreciationStep struct {
	Bracket  string  `json:"bracket"` // e.g. "0-1y", "1-3y", "7+y"
	Years    float64 `json:"years"`   // years spent in the bracket (may be fractional)
	Rate     float64 `json:"rate"`    // annual rate applied
	Amount   float64 `json:"amount"`  // absolute value removed in this bracket
	Residual float64 `json:"residual"` // value remaining after this bracket
}

// SentimentFactor is one multiplicative market adjustment, reported
// separately even though only the product matters for pricing.
type SentimentFactor struct {
	Name       string  `json:"name"` // "fuel_trend", "segment", "brand", "economic"
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
	Fallback   bool    `json:"fallback,omitempty"` // lookup miss, neutral 1.0 used
}

// TransactionPrices holds the four context-specific prices derived from FMV.
type TransactionPrices struct {
	C2C float64 `json:"c2c"` // fair market value
	C2B float64 `json:"c2b"` // trade-in (procurement)
	B2C float64 `json:"b2c"` // retail
	B2B float64 `json:"b2b"` // wholesale
}

// ValuationResult is the full audit output of one valuation request.
// Created once, immutable, owned by the caller.
type ValuationResult struct {
	RequestID string `json:"request_id"`

	// Core prices
	FairMarketValue float64           `json:"fair_market_value"`
	Prices          TransactionPrices `json:"prices"`
	TradeInMin      float64           `json:"trade_in_min"`
	TradeInMax      float64           `json:"trade_in_max"`

	// Baseline
	Baseline      float64        `json:"baseline"`
	BaselineKind  BaselineKind   `json:"baseline_kind"`
	ReferenceYear int            `json:"reference_year"`
	Consensus     ConsensusPrice `json:"consensus"`

	// Stage outputs
	DepreciatedValue  float64            `json:"depreciated_value"`
	DepreciationPct   float64            `json:"depreciation_pct"`
	ResidualPct       float64            `json:"residual_pct"`
	DepreciationSteps []DepreciationStep `json:"depreciation_steps"`

	UsageMultiplier  float64 `json:"usage_multiplier"`
	ExpectedOdometer int     `json:"expected_odometer"`
	OdometerDeviation int    `json:"odometer_deviation"`

	ConditionScore      float64            `json:"condition_score"`
	ConditionGrade      ConditionGrade     `json:"condition_grade"`
	ConditionMultiplier float64            `json:"condition_multiplier"`
	ConditionBreakdown  map[string]float64 `json:"condition_breakdown"`

	OwnershipMultiplier float64           `json:"ownership_multiplier"`
	SentimentFactors    []SentimentFactor `json:"sentiment_factors"`
	SentimentMultiplier float64           `json:"sentiment_multiplier"`

	// Flags and human-readable audit notes
	ManualVerificationRequired bool     `json:"manual_verification_required"`
	LowConfidencePrice         bool     `json:"low_confidence_price"`
	FallbacksUsed              []string `json:"fallbacks_used,omitempty"`
	Warnings                   []string `json:"warnings,omitempty"`
	Notes                      []string `json:"notes,omitempty"`
}
