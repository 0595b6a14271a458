package baseline

import (
	"context"
	"fmt"
	"math"
	"strings"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/core/consensus"
	"vehicle_valuation/pkg/core/pricing"
	"vehicle_valuation/pkg/models"
)

// QuoteFetcher supplies current-market quotes; satisfied by consensus.Fetcher.
type QuoteFetcher interface {
	FetchAll(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, []string)
}

// HistoricalSource supplies purchase-year quotes for discontinued models;
// satisfied by the pgx-backed store.
type HistoricalSource interface {
	QuotesAt(ctx context.Context, identity models.VehicleIdentity, year int) ([]models.PriceQuote, error)
}

// Selector decides the depreciation baseline: the current new-vehicle price
// for models still in production, the original purchase-year price for
// discontinued ones. Either way the baseline is an on-road price in the
// reference year's fee schedule.
type Selector struct {
	registry     config.RegistryConfig
	fetcher      QuoteFetcher
	historical   HistoricalSource
	fallback     pricing.FallbackEstimator
	resolver     *consensus.Resolver
	onRoad       *OnRoadCalculator
	discontinued map[string]bool
}

func NewSelector(cfg *config.Config, fetcher QuoteFetcher, historical HistoricalSource, fallback pricing.FallbackEstimator) *Selector {
	discontinued := make(map[string]bool, len(cfg.Registry.DiscontinuedModels))
	for _, key := range cfg.Registry.DiscontinuedModels {
		discontinued[strings.ToLower(key)] = true
	}
	return &Selector{
		registry:     cfg.Registry,
		fetcher:      fetcher,
		historical:   historical,
		fallback:     fallback,
		resolver:     consensus.NewResolver(cfg.Consensus),
		onRoad:       NewOnRoadCalculator(cfg.OnRoad),
		discontinued: discontinued,
	}
}

// Result is the selected baseline plus everything needed for the audit trail.
type Result struct {
	Baseline      float64 // on-road price in the reference year
	ExShowroom    float64
	Kind          models.BaselineKind
	ReferenceYear int
	Consensus     models.ConsensusPrice
	FallbacksUsed []string
	Warnings      []string
	Notes         []string
}

// Select resolves the baseline for the vehicle at the given valuation year.
func (s *Selector) Select(ctx context.Context, vehicle *models.VehicleRecord, valuationYear int) (Result, error) {
	identity := vehicle.Identity()
	if s.IsDiscontinued(vehicle.Make, vehicle.Model) {
		return s.selectDiscontinued(ctx, identity, valuationYear)
	}
	return s.selectCurrent(ctx, identity, valuationYear)
}

// IsDiscontinued reports whether "make model" appears in the discontinued
// registry. Matching is case-insensitive on the combined key so registry
// maintenance stays a plain string list.
func (s *Selector) IsDiscontinued(make, model string) bool {
	key := strings.ToLower(strings.TrimSpace(make + " " + model))
	if s.discontinued[key] {
		return true
	}
	// Variant suffixes ("Polo GT") still match their base entry.
	for entry := range s.discontinued {
		if strings.HasPrefix(key, entry+" ") {
			return true
		}
	}
	return false
}

func (s *Selector) selectCurrent(ctx context.Context, identity models.VehicleIdentity, valuationYear int) (Result, error) {
	res := Result{Kind: models.BaselineCurrentNew, ReferenceYear: valuationYear}

	quotes, warnings := s.fetcher.FetchAll(ctx, identity)
	res.Warnings = append(res.Warnings, warnings...)
	res.Consensus = s.resolver.Resolve(quotes)

	exShowroom := res.Consensus.Price
	if res.Consensus.Confidence == models.ConfidenceFailed && !res.Consensus.ManualVerification {
		// No quotes at all. A segment estimate keeps the valuation alive but
		// is prominently flagged.
		estimate, err := s.fallback.Estimate(identity)
		if err != nil {
			return res, fmt.Errorf("no price quotes and fallback estimation failed: %w", err)
		}
		exShowroom = estimate
		res.FallbacksUsed = append(res.FallbacksUsed, s.fallback.Name())
		res.Notes = append(res.Notes, fmt.Sprintf("baseline estimated from segment data (%s), no live quotes available", s.fallback.Name()))
	}

	res.ExShowroom = exShowroom
	res.Baseline = s.onRoad.OnRoad(exShowroom, valuationYear)
	return res, nil
}

func (s *Selector) selectDiscontinued(ctx context.Context, identity models.VehicleIdentity, valuationYear int) (Result, error) {
	res := Result{Kind: models.BaselineOriginalPurchase, ReferenceYear: identity.Year}
	res.Notes = append(res.Notes, fmt.Sprintf("%s %s is discontinued, valuing against the %d purchase price", identity.Make, identity.Model, identity.Year))

	var quotes []models.PriceQuote
	if s.historical != nil {
		var err error
		quotes, err = s.historical.QuotesAt(ctx, identity, identity.Year)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("historical price lookup failed: %v", err))
		}
	}
	res.Consensus = s.resolver.Resolve(quotes)

	exShowroom := res.Consensus.Price
	if res.Consensus.Confidence == models.ConfidenceFailed && !res.Consensus.ManualVerification {
		// No archived price either: back-project today's segment price to the
		// purchase year using the historical deflation rate.
		estimate, err := s.fallback.Estimate(identity)
		if err != nil {
			return res, fmt.Errorf("no historical price and fallback estimation failed: %w", err)
		}
		years := valuationYear - identity.Year
		if years < 0 {
			years = 0
		}
		exShowroom = estimate * math.Pow(1-s.registry.HistoricalDeflation, float64(years))
		res.FallbacksUsed = append(res.FallbacksUsed, s.fallback.Name())
		res.Notes = append(res.Notes, fmt.Sprintf("purchase price back-projected %d year(s) at %.0f%% annual deflation", years, s.registry.HistoricalDeflation*100))
	}

	res.ExShowroom = exShowroom
	res.Baseline = s.onRoad.OnRoad(exShowroom, identity.Year)
	return res, nil
}
