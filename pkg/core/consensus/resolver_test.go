package consensus

import (
	"math"
	"testing"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

func newTestResolver() *Resolver {
	return NewResolver(config.Default().Consensus)
}

func quotes(tier models.SourceTier, prices ...float64) []models.PriceQuote {
	qs := make([]models.PriceQuote, len(prices))
	for i, p := range prices {
		qs[i] = models.PriceQuote{Source: "src", Price: p, Tier: tier}
	}
	return qs
}

func TestNoQuotesFails(t *testing.T) {
	cp := newTestResolver().Resolve(nil)
	if cp.Confidence != models.ConfidenceFailed {
		t.Errorf("expected FAILED, got %s", cp.Confidence)
	}
	if cp.Price != 0 {
		t.Errorf("expected zero price, got %.0f", cp.Price)
	}
}

func TestSingleQuoteIsLowConfidence(t *testing.T) {
	cp := newTestResolver().Resolve(quotes(models.TierPrimaryAggregator, 650000))
	if cp.Confidence != models.ConfidenceLow {
		t.Errorf("expected LOW, got %s", cp.Confidence)
	}
	if cp.Price != 650000 {
		t.Errorf("expected the single price, got %.0f", cp.Price)
	}
	if cp.SourceCount != 1 || cp.AgreeCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", cp.SourceCount, cp.AgreeCount)
	}
}

func TestThreeTightQuotesAreHighMedian(t *testing.T) {
	// Spread = 1000/659500 = 0.15%, well inside the 3% tight band.
	cp := newTestResolver().Resolve(quotes(models.TierPrimaryAggregator, 659000, 660000, 659500))
	if cp.Confidence != models.ConfidenceHigh {
		t.Errorf("expected HIGH, got %s", cp.Confidence)
	}
	if cp.Price != 659500 {
		t.Errorf("expected median 659500, got %.0f", cp.Price)
	}
}

func TestOfficialSourceUpgradesToVeryHigh(t *testing.T) {
	qs := quotes(models.TierPrimaryAggregator, 659000, 660000)
	qs = append(qs, models.PriceQuote{Source: "manufacturer", Price: 659500, Tier: models.TierOfficial})
	cp := newTestResolver().Resolve(qs)
	if cp.Confidence != models.ConfidenceVeryHigh {
		t.Errorf("expected VERY_HIGH, got %s", cp.Confidence)
	}
	if !cp.HasOfficial {
		t.Error("HasOfficial should be set")
	}
}

func TestTwoCloseQuotesAreMediumMean(t *testing.T) {
	// Spread = 20000/650000 ≈ 3.08%, inside the 5% medium band.
	cp := newTestResolver().Resolve(quotes(models.TierPrimaryAggregator, 640000, 660000))
	if cp.Confidence != models.ConfidenceMedium {
		t.Errorf("expected MEDIUM, got %s", cp.Confidence)
	}
	if cp.Price != 650000 {
		t.Errorf("expected mean 650000, got %.0f", cp.Price)
	}
}

func TestTwoLooseQuotesDegradeToLow(t *testing.T) {
	// Spread = 50000/675000 ≈ 7.4%: past the medium band, inside failure.
	cp := newTestResolver().Resolve(quotes(models.TierPrimaryAggregator, 650000, 700000))
	if cp.Confidence != models.ConfidenceLow {
		t.Errorf("expected LOW, got %s", cp.Confidence)
	}
	if cp.Price != 675000 {
		t.Errorf("expected median 675000, got %.0f", cp.Price)
	}
}

func TestWideSpreadFailsWithManualVerification(t *testing.T) {
	// Spread = 150000/675000 ≈ 22%: no statistic is trustworthy.
	cp := newTestResolver().Resolve(quotes(models.TierPrimaryAggregator, 600000, 675000, 750000))
	if cp.Confidence != models.ConfidenceFailed {
		t.Errorf("expected FAILED, got %s", cp.Confidence)
	}
	if !cp.ManualVerification {
		t.Error("manual verification flag should be set")
	}
	if cp.Price != 675000 {
		t.Errorf("informational median should still be reported, got %.0f", cp.Price)
	}
}

func TestOutlierExcludedButCounted(t *testing.T) {
	// 2 crore against three ~6.6 lakh quotes: beyond 2x the median, so it
	// must not drag the consensus, but SourceCount still shows it was seen.
	qs := quotes(models.TierPrimaryAggregator, 659000, 660000, 659500, 20000000)
	cp := newTestResolver().Resolve(qs)
	if cp.Confidence != models.ConfidenceHigh {
		t.Errorf("expected HIGH after outlier trim, got %s", cp.Confidence)
	}
	if cp.Price != 659500 {
		t.Errorf("expected median of the agreement set, got %.0f", cp.Price)
	}
	if cp.SourceCount != 4 {
		t.Errorf("SourceCount = %d, want 4", cp.SourceCount)
	}
	if cp.AgreeCount != 3 {
		t.Errorf("AgreeCount = %d, want 3", cp.AgreeCount)
	}
}

func TestSpreadComputation(t *testing.T) {
	qs := quotes(models.TierPrimaryAggregator, 600000, 640000, 620000)
	cp := newTestResolver().Resolve(qs)
	// (640000-600000)/620000 = 6.45%
	if math.Abs(cp.Spread-6.451612903) > 1e-6 {
		t.Errorf("spread = %.6f, want ~6.4516", cp.Spread)
	}
	if cp.Confidence != models.ConfidenceLow {
		t.Errorf("6.45%% spread over three quotes should be LOW, got %s", cp.Confidence)
	}
}
