package pricing

import (
	"context"

	"vehicle_valuation/pkg/models"
)

// PriceSource fetches current-market price quotes for a vehicle identity.
// Implementations live under pkg/providers; the core pipeline only ever sees
// this interface. Fetch must honor ctx and return an error rather than block.
type PriceSource interface {
	// Name identifies the source in logs and in ConsensusPrice.Sources.
	Name() string
	// Tier ranks the source's authority for confidence grading.
	Tier() models.SourceTier
	// Fetch returns zero or more quotes for the identity. An empty slice with
	// a nil error means the source answered but lists no such vehicle.
	Fetch(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, error)
}

// FallbackEstimator produces a synthetic baseline when every live source
// fails. Estimates are flagged in the final result so they are never mistaken
// for observed market prices.
type FallbackEstimator interface {
	Name() string
	Estimate(identity models.VehicleIdentity) (float64, error)
}
