package depreciation

import (
	"fmt"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

// Engine applies the age-bracket depreciation schedule to a baseline price.
// Decay compounds on the remaining value, so a later bracket at an equal
// rate always removes a smaller absolute amount than an earlier one.
type Engine struct {
	brackets []config.Bracket
}

// NewEngine builds an engine over a validated bracket schedule.
func NewEngine(cfg config.DepreciationConfig) *Engine {
	return &Engine{brackets: cfg.Brackets}
}

// Result is the full audit output of one depreciation run.
type Result struct {
	Residual        float64
	TotalDepreciated float64
	DepreciationPct float64 // of baseline
	ResidualPct     float64
	Steps           []models.DepreciationStep
}

// Depreciate runs the schedule for ageYears against baseline.
// Partial years apply the bracket rate pro-rata; a bracket transition always
// finalizes the prior bracket's full-year decay first. Age <= 0 returns the
// baseline unchanged.
func (e *Engine) Depreciate(baseline float64, ageYears float64) (*Result, error) {
	if baseline <= 0 {
		return nil, fmt.Errorf("baseline price must be positive, got %.2f", baseline)
	}

	res := &Result{Residual: baseline, ResidualPct: 100}
	if ageYears <= 0 {
		return res, nil
	}

	remaining := baseline
	for _, b := range e.brackets {
		if ageYears <= b.FromYear {
			break
		}

		// Years the vehicle actually spent inside this bracket.
		span := ageYears - b.FromYear
		if b.ToYear > 0 && b.ToYear-b.FromYear < span {
			span = b.ToYear - b.FromYear
		}

		amount := 0.0
		// Whole years compound one at a time on the shrinking remainder.
		whole := int(span)
		for i := 0; i < whole; i++ {
			step := remaining * b.Rate
			remaining -= step
			amount += step
		}
		// Fractional tail applies the rate pro-rata.
		if frac := span - float64(whole); frac > 1e-12 {
			step := remaining * b.Rate * frac
			remaining -= step
			amount += step
		}

		res.Steps = append(res.Steps, models.DepreciationStep{
			Bracket:  b.Label,
			Years:    span,
			Rate:     b.Rate,
			Amount:   amount,
			Residual: remaining,
		})
	}

	res.Residual = remaining
	res.TotalDepreciated = baseline - remaining
	res.DepreciationPct = res.TotalDepreciated / baseline * 100
	res.ResidualPct = remaining / baseline * 100
	return res, nil
}
