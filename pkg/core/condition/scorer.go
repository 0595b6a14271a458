package condition

import (
	"fmt"

	"vehicle_valuation/pkg/models"
)

// Category weights. Sub-score tables below sum exactly to each weight, so a
// flawless inspection scores 100.
const (
	weightEngine     = 35
	weightBody       = 25
	weightMechanical = 15
	weightInterior   = 15
	weightDocs       = 10
)

// Grade thresholds and their multipliers.
const (
	thresholdExcellent = 90
	thresholdVeryGood  = 75
	thresholdGood      = 50
)

var gradeMultipliers = map[models.ConditionGrade]float64{
	models.GradeExcellent: 1.10,
	models.GradeVeryGood:  1.05,
	models.GradeGood:      1.00,
	models.GradeFair:      0.85,
}

// Scorer aggregates a ConditionReport into a 0-100 score, a grade, and a
// valuation multiplier. All tables are fixed lookup bands; the middle value
// is used for any unrecognized enum string so a typo degrades gracefully.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Result is the scored inspection with a per-item breakdown for the audit trail.
type Result struct {
	Score      float64
	Grade      models.ConditionGrade
	Multiplier float64
	Breakdown  map[string]float64
	Warnings   []string
}

// Score runs the weighted five-category inspection.
func (s *Scorer) Score(report models.ConditionReport) Result {
	breakdown := make(map[string]float64)
	var warnings []string

	// Engine / transmission (35): smoke 12, noise 11, shift quality 12.
	smoke := lookupBand(report.EngineSmoke, map[string]float64{"None": 12, "White": 4, "Black": 0}, 6)
	noise := lookupBand(report.EngineNoise, map[string]float64{"Normal": 11, "Slight": 6, "Heavy": 0}, 5)
	shift := lookupBand(report.TransmissionFeel, map[string]float64{"Smooth": 12, "Rough": 6, "Slipping": 0}, 6)
	breakdown["engine_smoke"] = smoke
	breakdown["engine_noise"] = noise
	breakdown["transmission"] = shift
	engine := smoke + noise + shift
	if report.EngineSmoke == "White" || report.EngineSmoke == "Black" {
		warnings = append(warnings, fmt.Sprintf("engine smoke detected (%s), major engine work may be required", report.EngineSmoke))
	}

	// Body / frame (25): dents 10, repaint 5, rust 5, frame 5.
	// Frame damage is a critical observation: it zeroes the entire category
	// no matter how clean the panels are.
	dents := lookupBand(report.DentsScratches, map[string]float64{"None": 10, "Minor": 7, "Moderate": 3, "Severe": 0}, 5)
	repaint := boolScore(!report.Repainted, 5)
	rust := boolScore(!report.RustPresent, 5)
	frame := boolScore(!report.FrameDamage, 5)
	breakdown["dents_scratches"] = dents
	breakdown["repaint"] = repaint
	breakdown["rust"] = rust
	breakdown["frame"] = frame
	body := dents + repaint + rust + frame
	if report.FrameDamage {
		body = 0
		breakdown["dents_scratches"] = 0
		breakdown["repaint"] = 0
		breakdown["rust"] = 0
		breakdown["frame"] = 0
		warnings = append(warnings, "CRITICAL: frame damage detected, vehicle may be unsafe or unsellable")
	}

	// Mechanical (15): tread 7, suspension 5, brakes 3.
	tread := treadScore(report.TireTreadPct)
	susp := lookupBand(report.Suspension, map[string]float64{"Excellent": 5, "Good": 4, "Fair": 2, "Poor": 0}, 2)
	brakes := lookupBand(report.Brakes, map[string]float64{"Excellent": 3, "Good": 2, "Fair": 1, "Poor": 0}, 1)
	breakdown["tire_tread"] = tread
	breakdown["suspension"] = susp
	breakdown["brakes"] = brakes
	mechanical := tread + susp + brakes
	if report.TireTreadPct < 30 {
		warnings = append(warnings, "tires critically worn, immediate replacement required")
	}

	// Interior / electrical (15): AC 5, electrical 5, interior 5.
	ac := boolScore(report.ACWorking, 5)
	elec := boolScore(!report.ElectricalFaults, 5)
	interior := lookupBand(report.Interior, map[string]float64{"Excellent": 5, "Good": 3, "Fair": 1, "Poor": 0}, 2)
	breakdown["ac"] = ac
	breakdown["electrical"] = elec
	breakdown["interior"] = interior
	comfort := ac + elec + interior
	if report.ElectricalFaults {
		warnings = append(warnings, "electrical faults reported, diagnostics recommended")
	}

	// Documentation (10): service history 5, insurance 3, accident-free 2.
	service := boolScore(report.ServiceHistory, 5)
	insurance := boolScore(report.InsuranceValid, 3)
	accident := boolScore(!report.AccidentHistory, 2)
	breakdown["service_history"] = service
	breakdown["insurance"] = insurance
	breakdown["accident_history"] = accident
	docs := service + insurance + accident
	if report.AccidentHistory {
		warnings = append(warnings, "accident history reported, detailed inspection recommended")
	}

	total := engine + body + mechanical + comfort + docs
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	grade := gradeFor(total)
	return Result{
		Score:      total,
		Grade:      grade,
		Multiplier: gradeMultipliers[grade],
		Breakdown:  breakdown,
		Warnings:   warnings,
	}
}

func gradeFor(score float64) models.ConditionGrade {
	switch {
	case score >= thresholdExcellent:
		return models.GradeExcellent
	case score >= thresholdVeryGood:
		return models.GradeVeryGood
	case score >= thresholdGood:
		return models.GradeGood
	default:
		return models.GradeFair
	}
}

func treadScore(pct int) float64 {
	switch {
	case pct >= 75:
		return 7
	case pct >= 50:
		return 5
	case pct >= 30:
		return 2
	default:
		return 0
	}
}

func lookupBand(key string, bands map[string]float64, fallback float64) float64 {
	if v, ok := bands[key]; ok {
		return v
	}
	return fallback
}

func boolScore(ok bool, points float64) float64 {
	if ok {
		return points
	}
	return 0
}
