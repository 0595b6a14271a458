package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"vehicle_valuation/pkg/core/baseline"
	"vehicle_valuation/pkg/core/condition"
	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/core/depreciation"
	"vehicle_valuation/pkg/core/sentiment"
	"vehicle_valuation/pkg/core/transaction"
	"vehicle_valuation/pkg/core/usage"
	"vehicle_valuation/pkg/models"
)

// Pipeline runs one valuation end to end: baseline selection, age
// depreciation, usage adjustment, condition scoring, ownership and market
// sentiment, then transaction pricing. Stages are pure given the config, so
// one Pipeline serves concurrent requests.
type Pipeline struct {
	cfg       *config.Config
	selector  *baseline.Selector
	engine    *depreciation.Engine
	adjuster  *usage.Adjuster
	scorer    *condition.Scorer
	composer  *sentiment.Composer
	pricer    *transaction.Pricer

	// now is stubbed in tests; production uses time.Now.
	now func() time.Time
}

func New(cfg *config.Config, selector *baseline.Selector) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		selector: selector,
		engine:   depreciation.NewEngine(cfg.Depreciation),
		adjuster: usage.NewAdjuster(cfg.Usage, cfg.Mileage),
		scorer:   condition.NewScorer(),
		composer: sentiment.NewComposer(cfg.Sentiment, cfg.Registry),
		pricer:   transaction.NewPricer(cfg.Transaction),
		now:      time.Now,
	}
}

// Valuate computes the full valuation for one vehicle.
func (p *Pipeline) Valuate(ctx context.Context, vehicle *models.VehicleRecord) (*models.ValuationResult, error) {
	now := p.now()
	if err := vehicle.Validate(now); err != nil {
		return nil, fmt.Errorf("invalid vehicle record: %w", err)
	}

	requestID := uuid.NewString()
	age := vehicle.AgeYears(now)
	fmt.Printf("[PIPELINE] %s valuing %s (age %.1fy, %d km)\n", requestID, vehicle.Identity(), age, vehicle.OdometerKM)

	result := &models.ValuationResult{RequestID: requestID}

	// Stage 1: baseline.
	base, err := p.selector.Select(ctx, vehicle, now.Year())
	if err != nil {
		return nil, fmt.Errorf("baseline selection: %w", err)
	}
	result.Baseline = base.Baseline
	result.BaselineKind = base.Kind
	result.ReferenceYear = base.ReferenceYear
	result.Consensus = base.Consensus
	result.FallbacksUsed = append(result.FallbacksUsed, base.FallbacksUsed...)
	result.Warnings = append(result.Warnings, base.Warnings...)
	result.Notes = append(result.Notes, base.Notes...)
	if base.Consensus.ManualVerification {
		result.ManualVerificationRequired = true
		result.Warnings = append(result.Warnings, "price sources disagree beyond tolerance, manual verification required")
	}
	if base.Consensus.Confidence == models.ConfidenceLow || base.Consensus.Confidence == models.ConfidenceFailed {
		result.LowConfidencePrice = true
	}
	fmt.Printf("[PIPELINE] %s baseline %.0f (%s, ref year %d, confidence %s)\n",
		requestID, base.Baseline, base.Kind, base.ReferenceYear, base.Consensus.Confidence)

	// Stage 2: age depreciation.
	dep, err := p.engine.Depreciate(base.Baseline, age)
	if err != nil {
		return nil, fmt.Errorf("depreciation: %w", err)
	}
	result.DepreciatedValue = dep.Residual
	result.DepreciationPct = dep.DepreciationPct
	result.ResidualPct = dep.ResidualPct
	result.DepreciationSteps = dep.Steps

	// Stage 3: usage.
	use := p.adjuster.Adjust(age, vehicle.OdometerKM, vehicle.FuelType)
	result.UsageMultiplier = use.Multiplier
	result.ExpectedOdometer = use.ExpectedOdometer
	result.OdometerDeviation = use.Deviation
	result.Warnings = append(result.Warnings, use.Warnings...)
	if use.TamperingSuspect {
		result.ManualVerificationRequired = true
	}

	// Stage 4: condition.
	cond := p.scorer.Score(vehicle.Condition)
	result.ConditionScore = cond.Score
	result.ConditionGrade = cond.Grade
	result.ConditionMultiplier = cond.Multiplier
	result.ConditionBreakdown = cond.Breakdown
	result.Warnings = append(result.Warnings, cond.Warnings...)

	// Stage 5: ownership and market sentiment.
	result.OwnershipMultiplier = p.ownershipMultiplier(vehicle.Owners)
	sent := p.composer.Compose(vehicle, now.Year())
	result.SentimentFactors = sent.Factors
	result.SentimentMultiplier = sent.Multiplier
	for _, f := range sent.Factors {
		if f.Fallback {
			result.FallbacksUsed = append(result.FallbacksUsed, "sentiment:"+f.Name)
		}
	}

	// Stage 6: fair market value and transaction prices.
	fmv := math.Round(dep.Residual * use.Multiplier * cond.Multiplier * result.OwnershipMultiplier * sent.Multiplier)
	result.FairMarketValue = fmv
	result.Prices = p.pricer.Price(fmv)
	result.TradeInMin, result.TradeInMax = p.pricer.TradeInRange(result.Prices)

	fmt.Printf("[PIPELINE] %s FMV %.0f (dep %.0f x usage %.3f x condition %.2f x owners %.2f x sentiment %.3f)\n",
		requestID, fmv, dep.Residual, use.Multiplier, cond.Multiplier, result.OwnershipMultiplier, sent.Multiplier)
	return result, nil
}

// ownershipMultiplier reads the owner-count table; counts beyond the highest
// key use the highest key's multiplier (the "4th and beyond" bucket).
func (p *Pipeline) ownershipMultiplier(owners int) float64 {
	if m, ok := p.cfg.Ownership[owners]; ok {
		return m
	}
	maxKey, mult := 0, 1.0
	for k, m := range p.cfg.Ownership {
		if k > maxKey {
			maxKey, mult = k, m
		}
	}
	if owners > maxKey {
		return mult
	}
	return 1.0
}
