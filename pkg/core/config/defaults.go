package config

import "vehicle_valuation/pkg/models"

// Default returns the calibrated defaults. The numbers mirror the published
// book-value methodology; every one is overridable from the YAML file since
// the thresholds get recalibrated against observed transactions over time.
func Default() *Config {
	return &Config{
		Depreciation: DepreciationConfig{
			Brackets: []Bracket{
				{Label: "0-1y", FromYear: 0, ToYear: 1, Rate: 0.15},
				{Label: "1-3y", FromYear: 1, ToYear: 3, Rate: 0.07},
				{Label: "3-5y", FromYear: 3, ToYear: 5, Rate: 0.06},
				{Label: "5-7y", FromYear: 5, ToYear: 7, Rate: 0.05},
				{Label: "7+y", FromYear: 7, ToYear: 0, Rate: 0.06},
			},
		},
		Usage: UsageConfig{
			Tiers: []UsageTier{
				{SpanKM: 40000, Rate: 2.0},
				{SpanKM: 50000, Rate: 4.0},
				{SpanKM: 0, Rate: 6.0},
			},
			CliffOdometerKM:    100000,
			CliffPenaltyPct:    8.0,
			PremiumPer10K:      1.5,
			PremiumCapPct:      10.0,
			FloorMultiplier:    0.40,
			TamperingKMPerYear: 2000,
		},
		Consensus: ConsensusConfig{
			TightAgreementPct: 3.0,
			LooseAgreementPct: 5.0,
			FailureSpreadPct:  10.0,
			OutlierFactor:     2.0,
		},
		Transaction: TransactionConfig{
			DealerMargin:      0.12,
			WholesaleDiscount: 0.08,
			TaxRate:           0.18,
			TradeInBufferPct:  0.05,
		},
		Mileage: map[models.FuelType]int{
			models.FuelPetrol:   11000,
			models.FuelDiesel:   16500,
			models.FuelCNG:      20000,
			models.FuelElectric: 11000,
		},
		Ownership: map[int]float64{
			1: 1.00,
			2: 0.93,
			3: 0.85,
			4: 0.75, // 4th and beyond
		},
		OnRoad: OnRoadConfig{
			RoadTaxRateByYear: map[int]float64{
				2015: 0.12, 2016: 0.12, 2017: 0.12,
				2018: 0.14, 2019: 0.14, 2020: 0.14,
				2021: 0.125, 2022: 0.125, 2023: 0.125, 2024: 0.125, 2025: 0.125,
			},
			DefaultRoadTax: 0.125,
			FixedChargesByYear: map[int]float64{
				2015: 1600, 2016: 1600, 2017: 2100, 2018: 2500, 2019: 2500,
				2020: 3000, 2021: 3000, 2022: 3700, 2023: 3700, 2024: 4400, 2025: 5000,
			},
			DefaultFixedCharges: 5000,
			InsuranceBands: []InsuranceBand{
				{UpToPrice: 500000, Rate: 0.040},
				{UpToPrice: 1000000, Rate: 0.035},
				{UpToPrice: 0, Rate: 0.030},
			},
			InsuranceYearDrift: 0.02,
			BaseYear:           2015,
		},
		Sentiment: SentimentConfig{
			FuelTrends: map[models.FuelType]map[int]float64{
				models.FuelPetrol: {
					2019: 1.00, 2020: 1.03, 2021: 1.04, 2022: 1.05,
					2023: 1.05, 2024: 1.03, 2025: 1.03, 2026: 1.03,
				},
				models.FuelDiesel: {
					2019: 1.02, 2020: 0.98, 2021: 0.95, 2022: 0.93,
					2023: 0.92, 2024: 0.91, 2025: 0.90, 2026: 0.90,
				},
				models.FuelCNG: {
					2019: 1.03, 2020: 1.04, 2021: 1.06, 2022: 1.08,
					2023: 1.08, 2024: 1.07, 2025: 1.07, 2026: 1.07,
				},
				models.FuelElectric: {
					2019: 0.95, 2020: 1.00, 2021: 1.05, 2022: 1.10,
					2023: 1.12, 2024: 1.15, 2025: 1.18, 2026: 1.18,
				},
			},
			SegmentMultipliers: map[string]float64{
				"hatchback":   1.00,
				"compact_suv": 1.08,
				"suv":         1.05,
				"sedan":       0.95,
				"mpv":         0.98,
				"luxury":      0.85,
			},
			BrandIndex: map[string]float64{
				"maruti suzuki": 1.08, "maruti": 1.08,
				"toyota": 1.06, "honda": 1.05,
				"hyundai": 1.04, "kia": 1.02,
				"mahindra": 1.01, "tata": 1.00,
				"volkswagen": 0.95, "skoda": 0.94,
				"nissan": 0.93, "renault": 0.92,
				"ford": 0.80, "chevrolet": 0.75, "fiat": 0.70,
			},
			EconomicEvents: map[int]EconomicEvent{
				2020: {Event: "pandemic demand collapse", Impact: -0.10},
				2021: {Event: "chip shortage, used-car premium", Impact: 0.05},
				2022: {Event: "chip shortage continues", Impact: 0.08},
			},
		},
		Registry: RegistryConfig{
			DiscontinuedModels: []string{
				"ford ecosport", "ford figo", "ford endeavour",
				"chevrolet beat", "chevrolet cruze",
				"fiat punto", "fiat linea",
				"volkswagen beetle", "volkswagen polo",
				"honda jazz", "honda civic",
				"nissan micra", "nissan sunny",
				"maruti celerio x", "maruti s-cross",
				"hyundai santro", "hyundai elantra",
				"toyota etios", "toyota yaris",
				"skoda rapid", "renault duster", "datsun go",
			},
			SegmentMap: map[string]string{
				"alto": "hatchback", "kwid": "hatchback", "wagon r": "hatchback",
				"swift": "hatchback", "baleno": "hatchback", "i20": "hatchback",
				"polo": "hatchback", "jazz": "hatchback", "altroz": "hatchback",
				"glanza": "hatchback", "tiago": "hatchback", "celerio": "hatchback",
				"venue": "compact_suv", "sonet": "compact_suv", "nexon": "compact_suv",
				"brezza": "compact_suv", "ecosport": "compact_suv", "xuv300": "compact_suv",
				"magnite": "compact_suv", "kiger": "compact_suv", "punch": "compact_suv",
				"creta": "suv", "seltos": "suv", "harrier": "suv", "hector": "suv",
				"xuv700": "suv", "compass": "suv", "alcazar": "suv", "safari": "suv",
				"scorpio": "suv", "grand vitara": "suv",
				"dzire": "sedan", "amaze": "sedan", "aura": "sedan", "city": "sedan",
				"verna": "sedan", "ciaz": "sedan", "slavia": "sedan", "virtus": "sedan",
				"ertiga": "mpv", "marazzo": "mpv", "carens": "mpv",
				"innova": "mpv", "carnival": "mpv",
				"fortuner": "luxury", "tucson": "luxury", "kodiaq": "luxury",
			},
			SegmentBasePrices: map[string]float64{
				"hatchback":   650000,
				"compact_suv": 1000000,
				"suv":         1500000,
				"sedan":       1100000,
				"mpv":         1200000,
				"luxury":      3500000,
			},
			HistoricalDeflation: 0.06,
		},
	}
}
