package usage

import (
	"fmt"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

// Adjuster converts odometer deviation from the expected-mileage curve into
// a multiplicative usage factor.
type Adjuster struct {
	cfg     config.UsageConfig
	mileage map[models.FuelType]int
}

func NewAdjuster(cfg config.UsageConfig, mileage map[models.FuelType]int) *Adjuster {
	return &Adjuster{cfg: cfg, mileage: mileage}
}

// Result carries the multiplier plus everything the audit breakdown needs.
type Result struct {
	Multiplier       float64
	ExpectedOdometer int
	Deviation        int
	PenaltyPct       float64 // net of premium; negative means a bonus
	CliffApplied     bool
	TamperingSuspect bool
	Warnings         []string
}

// Adjust computes the usage multiplier for the given age and odometer reading.
//
// Over-driven deviation is consumed tier by tier, each tier's per-10k rate
// applying only to the kilometers inside it. Crossing the absolute odometer
// cliff adds a flat penalty exactly once: the market treats a six-digit
// odometer as a financing and resale barrier no matter how far past it the
// reading is. Under-driven readings earn a capped linear premium; extreme
// low mileage is a tampering signal, not a bigger reward.
func (a *Adjuster) Adjust(ageYears float64, odometerKM int, fuel models.FuelType) Result {
	annual, ok := a.mileage[fuel]
	if !ok {
		annual = a.mileage[models.FuelPetrol]
	}

	expected := int(ageYears * float64(annual))
	deviation := odometerKM - expected

	res := Result{
		ExpectedOdometer: expected,
		Deviation:        deviation,
	}

	// Tampering detection: readings far below even minimal yearly use are
	// suspect. Cap the premium-side deviation instead of rewarding it.
	if odometerKM < int(ageYears*float64(a.cfg.TamperingKMPerYear)) {
		res.TamperingSuspect = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"odometer %d km suspiciously low for a %.1f year old vehicle, possible tampering", odometerKM, ageYears))
		capped := -int(float64(expected) * 0.3)
		if deviation < capped {
			deviation = capped
		}
	}

	penalty := 0.0
	switch {
	case deviation > 0:
		remaining := deviation
		for _, tier := range a.cfg.Tiers {
			if remaining <= 0 {
				break
			}
			km := remaining
			if tier.SpanKM > 0 && km > tier.SpanKM {
				km = tier.SpanKM
			}
			penalty += float64(km) / 10000 * tier.Rate
			remaining -= km
		}

	case deviation < 0:
		premium := float64(-deviation) / 10000 * a.cfg.PremiumPer10K
		if premium > a.cfg.PremiumCapPct {
			premium = a.cfg.PremiumCapPct
		}
		penalty = -premium
	}

	// The cliff is keyed to the absolute reading, not the deviation: a heavy
	// diesel can sit under its expected curve and still carry six digits.
	if a.cfg.CliffOdometerKM > 0 && odometerKM >= a.cfg.CliffOdometerKM {
		penalty += a.cfg.CliffPenaltyPct
		res.CliffApplied = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"vehicle has crossed the %d km barrier, expect weaker demand and financing difficulty", a.cfg.CliffOdometerKM))
	}

	multiplier := 1 - penalty/100
	if multiplier < a.cfg.FloorMultiplier {
		multiplier = a.cfg.FloorMultiplier
	}

	res.PenaltyPct = penalty
	res.Multiplier = multiplier
	return res
}
