package transaction

import (
	"testing"

	"vehicle_valuation/pkg/core/config"
)

func TestPriceContexts(t *testing.T) {
	p := NewPricer(config.Default().Transaction)
	prices := p.Price(500000)

	// margin = 60000, tax on margin = 10800
	if prices.C2C != 500000 {
		t.Errorf("C2C = %.0f, want 500000", prices.C2C)
	}
	if prices.C2B != 440000 {
		t.Errorf("C2B = %.0f, want 440000 (12%% procurement haircut)", prices.C2B)
	}
	if prices.B2C != 570800 {
		t.Errorf("B2C = %.0f, want 570800 (margin + 18%% GST on margin)", prices.B2C)
	}
	if prices.B2B != 400000 {
		t.Errorf("B2B = %.0f, want 400000 (20%% wholesale haircut)", prices.B2B)
	}
}

func TestPriceOrderingInvariant(t *testing.T) {
	p := NewPricer(config.Default().Transaction)

	for _, fmv := range []float64{85000, 447626, 650000, 1250000, 4800000} {
		prices := p.Price(fmv)
		if !(prices.B2B <= prices.C2B && prices.C2B <= prices.C2C && prices.C2C <= prices.B2C) {
			t.Errorf("fmv %.0f: ordering violated: B2B=%.0f C2B=%.0f C2C=%.0f B2C=%.0f",
				fmv, prices.B2B, prices.C2B, prices.C2C, prices.B2C)
		}
	}
}

func TestTradeInRange(t *testing.T) {
	p := NewPricer(config.Default().Transaction)
	prices := p.Price(500000)

	min, max := p.TradeInRange(prices)
	if max != prices.C2B {
		t.Errorf("trade-in max = %.0f, want C2B %.0f", max, prices.C2B)
	}
	if min != 418000 {
		t.Errorf("trade-in min = %.0f, want 418000 (5%% buffer below C2B)", min)
	}
	if min > max {
		t.Error("trade-in range is inverted")
	}
}

func TestZeroFMV(t *testing.T) {
	p := NewPricer(config.Default().Transaction)
	prices := p.Price(0)
	if prices.B2C != 0 || prices.B2B != 0 {
		t.Errorf("zero FMV should produce zero prices, got %+v", prices)
	}
}
