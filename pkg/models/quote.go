package models

import "time"

// SourceTier ranks how authoritative a price source is.
type SourceTier string

const (
	TierOfficial            SourceTier = "official"  // manufacturer website / price list
	TierPrimaryAggregator   SourceTier = "primary"   // CarDekho, CarWale class
	TierSecondaryAggregator SourceTier = "secondary" // ZigWheels, V3Cars class
)

// PriceQuote is one raw price observation from a named source.
// Produced by providers; read-only to the core pipeline.
type PriceQuote struct {
	Source    string     `json:"source"`
	Price     float64    `json:"price"`
	Tier      SourceTier `json:"tier"`
	URL       string     `json:"url,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// Confidence is the qualitative agreement tier of a consensus price.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "VERY_HIGH"
	ConfidenceHigh     Confidence = "HIGH"
	ConfidenceMedium   Confidence = "MEDIUM"
	ConfidenceLow      Confidence = "LOW"
	ConfidenceFailed   Confidence = "FAILED"
)

// ConsensusPrice is the resolved cross-source price for one vehicle identity.
// Recomputed per valuation request, never persisted.
type ConsensusPrice struct {
	Price       float64    `json:"price"`
	Confidence  Confidence `json:"confidence"`
	SourceCount int        `json:"source_count"` // all quotes seen, outliers included
	AgreeCount  int        `json:"agree_count"`  // quotes inside the agreement set
	Spread      float64    `json:"spread"`       // (max-min)/mean over the agreement set
	HasOfficial bool       `json:"has_official"`
	// ManualVerification is set when the spread exceeded the failure threshold:
	// Price is still populated (median) but must be treated as informational.
	ManualVerification bool     `json:"manual_verification"`
	Sources            []string `json:"sources"`
}
