package baseline

import (
	"context"
	"fmt"
	"math"
	"testing"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

type stubFetcher struct {
	quotes []models.PriceQuote
}

func (s *stubFetcher) FetchAll(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, []string) {
	return s.quotes, nil
}

type stubHistorical struct {
	quotes []models.PriceQuote
	err    error
}

func (s *stubHistorical) QuotesAt(ctx context.Context, identity models.VehicleIdentity, year int) ([]models.PriceQuote, error) {
	return s.quotes, s.err
}

type stubEstimator struct {
	price float64
	err   error
}

func (s *stubEstimator) Name() string { return "segment-estimator" }
func (s *stubEstimator) Estimate(identity models.VehicleIdentity) (float64, error) {
	return s.price, s.err
}

func threeQuotes(prices ...float64) []models.PriceQuote {
	qs := make([]models.PriceQuote, len(prices))
	for i, p := range prices {
		qs[i] = models.PriceQuote{Source: fmt.Sprintf("src%d", i), Price: p, Tier: models.TierPrimaryAggregator}
	}
	return qs
}

func TestCurrentModelUsesConsensusOnRoad(t *testing.T) {
	cfg := config.Default()
	sel := NewSelector(cfg,
		&stubFetcher{quotes: threeQuotes(659000, 660000, 659500)},
		&stubHistorical{}, &stubEstimator{})

	vehicle := &models.VehicleRecord{Make: "Maruti", Model: "Swift", Year: 2021, FuelType: models.FuelPetrol}
	res, err := sel.Select(context.Background(), vehicle, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != models.BaselineCurrentNew {
		t.Errorf("kind = %s, want current_new", res.Kind)
	}
	if res.ReferenceYear != 2025 {
		t.Errorf("reference year = %d, want 2025", res.ReferenceYear)
	}
	if res.ExShowroom != 659500 {
		t.Errorf("ex-showroom = %.0f, want consensus median 659500", res.ExShowroom)
	}
	// On-road 2025: 659500 + 12.5% road tax + 5000 fixed
	// + insurance 3.5% (6.6L band) * (1 + 0.02*10 drift) = 4.2%.
	want := 659500 + 659500*0.125 + 5000 + 659500*0.035*1.20
	if math.Abs(res.Baseline-want) > 1 {
		t.Errorf("baseline = %.0f, want %.0f", res.Baseline, want)
	}
	if len(res.FallbacksUsed) != 0 {
		t.Errorf("no fallback expected, got %v", res.FallbacksUsed)
	}
}

func TestDiscontinuedModelUsesPurchaseYearSchedule(t *testing.T) {
	cfg := config.Default()
	sel := NewSelector(cfg,
		&stubFetcher{}, // must not matter for a discontinued model
		&stubHistorical{quotes: threeQuotes(717000, 718000, 717800)},
		&stubEstimator{})

	vehicle := &models.VehicleRecord{Make: "Ford", Model: "EcoSport", Year: 2018, FuelType: models.FuelPetrol}
	res, err := sel.Select(context.Background(), vehicle, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != models.BaselineOriginalPurchase {
		t.Errorf("kind = %s, want original_purchase", res.Kind)
	}
	if res.ReferenceYear != 2018 {
		t.Errorf("reference year = %d, want 2018", res.ReferenceYear)
	}
	if res.ExShowroom != 717800 {
		t.Errorf("ex-showroom = %.0f, want median 717800", res.ExShowroom)
	}
	// 2018 schedule: 14% road tax, 2500 fixed, insurance 3.5% * (1+0.02*3).
	want := 717800 + 717800*0.14 + 2500 + 717800*0.035*1.06
	if math.Abs(res.Baseline-want) > 1 {
		t.Errorf("baseline = %.0f, want %.0f", res.Baseline, want)
	}
}

func TestDiscontinuedDetection(t *testing.T) {
	sel := NewSelector(config.Default(), &stubFetcher{}, &stubHistorical{}, &stubEstimator{})

	cases := []struct {
		make, model string
		want        bool
	}{
		{"Ford", "EcoSport", true},
		{"FORD", "Figo", true},
		{"Volkswagen", "Polo GT", true}, // variant suffix still matches
		{"Maruti", "Swift", false},
		{"Hyundai", "Creta", false},
	}
	for _, c := range cases {
		if got := sel.IsDiscontinued(c.make, c.model); got != c.want {
			t.Errorf("IsDiscontinued(%s %s) = %v, want %v", c.make, c.model, got, c.want)
		}
	}
}

func TestNoQuotesFallsBackToSegmentEstimate(t *testing.T) {
	cfg := config.Default()
	sel := NewSelector(cfg, &stubFetcher{}, &stubHistorical{}, &stubEstimator{price: 650000})

	vehicle := &models.VehicleRecord{Make: "Maruti", Model: "Swift", Year: 2021, FuelType: models.FuelPetrol}
	res, err := sel.Select(context.Background(), vehicle, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if res.ExShowroom != 650000 {
		t.Errorf("ex-showroom = %.0f, want estimate 650000", res.ExShowroom)
	}
	if len(res.FallbacksUsed) != 1 || res.FallbacksUsed[0] != "segment-estimator" {
		t.Errorf("fallback not recorded: %v", res.FallbacksUsed)
	}
	if res.Consensus.Confidence != models.ConfidenceFailed {
		t.Errorf("consensus should remain FAILED, got %s", res.Consensus.Confidence)
	}
}

func TestDiscontinuedWithoutHistoryBackProjects(t *testing.T) {
	cfg := config.Default()
	sel := NewSelector(cfg, &stubFetcher{}, &stubHistorical{}, &stubEstimator{price: 1000000})

	vehicle := &models.VehicleRecord{Make: "Chevrolet", Model: "Cruze", Year: 2017, FuelType: models.FuelDiesel}
	res, err := sel.Select(context.Background(), vehicle, 2025)
	if err != nil {
		t.Fatal(err)
	}
	// 8 years of 6% deflation: 1000000 * 0.94^8 = 609568.94
	want := 1000000 * math.Pow(0.94, 8)
	if math.Abs(res.ExShowroom-want) > 1 {
		t.Errorf("ex-showroom = %.0f, want %.0f", res.ExShowroom, want)
	}
	if res.ReferenceYear != 2017 {
		t.Errorf("reference year = %d, want 2017", res.ReferenceYear)
	}
}

func TestEstimatorFailureIsFatal(t *testing.T) {
	cfg := config.Default()
	sel := NewSelector(cfg, &stubFetcher{}, &stubHistorical{}, &stubEstimator{err: fmt.Errorf("unknown segment")})

	vehicle := &models.VehicleRecord{Make: "Maruti", Model: "Swift", Year: 2021, FuelType: models.FuelPetrol}
	if _, err := sel.Select(context.Background(), vehicle, 2025); err == nil {
		t.Fatal("expected an error when no quotes and no estimate exist")
	}
}
