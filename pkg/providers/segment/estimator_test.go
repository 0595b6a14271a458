package segment

import (
	"testing"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

func TestEstimateKnownModel(t *testing.T) {
	e := NewEstimator(config.Default().Registry)

	price, err := e.Estimate(models.VehicleIdentity{Make: "Maruti", Model: "Swift"})
	if err != nil {
		t.Fatal(err)
	}
	if price != 650000 {
		t.Errorf("Swift should estimate at the hatchback seed 650000, got %.0f", price)
	}
}

func TestEstimateSubstringMatch(t *testing.T) {
	e := NewEstimator(config.Default().Registry)

	price, err := e.Estimate(models.VehicleIdentity{Make: "Hyundai", Model: "Creta SX(O)"})
	if err != nil {
		t.Fatal(err)
	}
	if price != 1500000 {
		t.Errorf("Creta variant should estimate at the suv seed, got %.0f", price)
	}
}

func TestEstimateEqualLengthTieIsStable(t *testing.T) {
	// "swift" and "dzire" are both five letters; the later occurrence in the
	// name wins, so the sedan seed must come back on every construction.
	for i := 0; i < 50; i++ {
		e := NewEstimator(config.Default().Registry)
		price, err := e.Estimate(models.VehicleIdentity{Make: "Maruti", Model: "Swift Dzire"})
		if err != nil {
			t.Fatal(err)
		}
		if price != 1100000 {
			t.Fatalf("Swift Dzire should estimate at the sedan seed 1100000, got %.0f", price)
		}
	}
}

func TestEstimateUnknownModel(t *testing.T) {
	e := NewEstimator(config.Default().Registry)

	if _, err := e.Estimate(models.VehicleIdentity{Make: "Maserati", Model: "Quattroporte"}); err == nil {
		t.Fatal("expected an error for a model outside the registry")
	}
}
