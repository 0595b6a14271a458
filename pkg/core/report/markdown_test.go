package report

import (
	"strings"
	"testing"
	"time"

	"vehicle_valuation/pkg/models"
)

func TestRupeesIndianGrouping(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{500, "₹500"},
		{659500, "₹6,59,500"},
		{45000, "₹45,000"},
		{12500000, "₹1,25,00,000"},
		{-1000, "-₹1,000"},
	}
	for _, c := range cases {
		if got := rupees(c.amount); got != c.want {
			t.Errorf("rupees(%.0f) = %s, want %s", c.amount, got, c.want)
		}
	}
}

func TestRenderFullReport(t *testing.T) {
	vehicle := &models.VehicleRecord{
		Make:             "Maruti",
		Model:            "Swift",
		Year:             2021,
		RegistrationDate: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		FuelType:         models.FuelPetrol,
		OdometerKM:       44000,
		Owners:           1,
	}
	result := &models.ValuationResult{
		RequestID:       "req-123",
		FairMarketValue: 655000,
		Prices:          models.TransactionPrices{C2C: 655000, C2B: 576400, B2C: 726332, B2B: 524000},
		TradeInMin:      547580,
		TradeInMax:      576400,
		Baseline:        774636,
		BaselineKind:    models.BaselineCurrentNew,
		ReferenceYear:   2025,
		Consensus:       models.ConsensusPrice{Confidence: models.ConfidenceHigh, SourceCount: 3},
		DepreciationSteps: []models.DepreciationStep{
			{Bracket: "0-1y", Years: 1, Rate: 0.15, Amount: 116195, Residual: 658441},
		},
		ResidualPct:         69.11,
		DepreciatedValue:    535317,
		UsageMultiplier:     1.0,
		ConditionScore:      100,
		ConditionGrade:      models.GradeExcellent,
		ConditionMultiplier: 1.10,
		OwnershipMultiplier: 1.0,
		SentimentMultiplier: 1.1124,
		SentimentFactors: []models.SentimentFactor{
			{Name: "fuel_trend", Multiplier: 1.03, Reason: "Petrol market trend for 2025"},
		},
		Warnings: []string{"tires worn"},
		Notes:    []string{"example note"},
	}

	doc, err := NewGenerator().Render(vehicle, result, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Vehicle Valuation Report",
		"req-123",
		"₹6,55,000",
		"Dealer buys (C2B)",
		"0-1y",
		"## Warnings",
		"tires worn",
		"## Notes",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(doc, "Manual verification") {
		t.Error("clean result should not include the manual verification section")
	}
}

func TestRenderFlagsManualVerification(t *testing.T) {
	vehicle := &models.VehicleRecord{Make: "Ford", Model: "EcoSport", Year: 2018,
		RegistrationDate: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), FuelType: models.FuelPetrol}
	result := &models.ValuationResult{
		RequestID:                  "req-456",
		BaselineKind:               models.BaselineOriginalPurchase,
		ManualVerificationRequired: true,
	}
	doc, err := NewGenerator().Render(vehicle, result, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "Manual verification required") {
		t.Error("manual verification section missing")
	}
	if !strings.Contains(doc, "original purchase price") {
		t.Error("baseline label missing")
	}
}
