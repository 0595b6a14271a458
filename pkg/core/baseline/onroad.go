package baseline

import (
	"vehicle_valuation/pkg/core/config"
)

// OnRoadCalculator converts an ex-showroom price into the on-road price for
// a given reference year. The fee schedule of the reference year applies,
// never the request year: a 2018 baseline pays 2018 road tax.
type OnRoadCalculator struct {
	cfg config.OnRoadConfig
}

func NewOnRoadCalculator(cfg config.OnRoadConfig) *OnRoadCalculator {
	return &OnRoadCalculator{cfg: cfg}
}

// OnRoad returns ex-showroom + road tax + fixed charges + first-year insurance.
func (o *OnRoadCalculator) OnRoad(exShowroom float64, year int) float64 {
	if exShowroom <= 0 {
		return 0
	}
	return exShowroom + o.roadTax(exShowroom, year) + o.fixedCharges(year) + o.insurance(exShowroom, year)
}

func (o *OnRoadCalculator) roadTax(exShowroom float64, year int) float64 {
	rate, ok := o.cfg.RoadTaxRateByYear[year]
	if !ok {
		rate = o.cfg.DefaultRoadTax
	}
	return exShowroom * rate
}

func (o *OnRoadCalculator) fixedCharges(year int) float64 {
	if charges, ok := o.cfg.FixedChargesByYear[year]; ok {
		return charges
	}
	return o.cfg.DefaultFixedCharges
}

// insurance picks the band by vehicle value, then inflates the band rate by
// the per-year drift from the schedule's base year.
func (o *OnRoadCalculator) insurance(exShowroom float64, year int) float64 {
	rate := 0.0
	for _, band := range o.cfg.InsuranceBands {
		rate = band.Rate
		if band.UpToPrice > 0 && exShowroom <= band.UpToPrice {
			break
		}
	}
	years := year - o.cfg.BaseYear
	if years < 0 {
		years = 0
	}
	rate *= 1 + o.cfg.InsuranceYearDrift*float64(years)
	return exShowroom * rate
}
