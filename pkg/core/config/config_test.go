package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("built-in defaults must validate: %v", err)
	}
}

func TestValidateRejectsGappedBrackets(t *testing.T) {
	cfg := Default()
	cfg.Depreciation.Brackets[1].FromYear = 2 // gap after the 0-1 bracket
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-contiguous brackets")
	}
}

func TestValidateRequiresUnboundedFinalBracket(t *testing.T) {
	cfg := Default()
	cfg.Depreciation.Brackets[len(cfg.Depreciation.Brackets)-1].ToYear = 30
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for a bounded final bracket")
	}
}

func TestValidateRejectsExcessiveHaircuts(t *testing.T) {
	cfg := Default()
	cfg.Transaction.DealerMargin = 0.6
	cfg.Transaction.WholesaleDiscount = 0.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when margin + discount reach 100%")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valuation.yaml")
	yaml := `
usage:
  tiers:
    - { span_km: 40000, rate: 2.0 }
    - { span_km: 0, rate: 5.0 }
  cliff_odometer_km: 120000
  cliff_penalty_pct: 8.0
  floor_multiplier: 0.35
  premium_per_10k: 1.5
  premium_cap_pct: 10.0
  tampering_km_per_year: 2000
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Usage.CliffOdometerKM != 120000 {
		t.Errorf("cliff = %d, want the overridden 120000", cfg.Usage.CliffOdometerKM)
	}
	if cfg.Usage.FloorMultiplier != 0.35 {
		t.Errorf("floor = %.2f, want 0.35", cfg.Usage.FloorMultiplier)
	}
	// Sections absent from the file keep their defaults.
	if len(cfg.Depreciation.Brackets) != 5 {
		t.Errorf("depreciation brackets = %d, want default 5", len(cfg.Depreciation.Brackets))
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestLoadRegistryHJSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.hjson")
	hjson := `{
  # test overlay
  discontinued_models: [
    tata nano
  ]
  historical_deflation: 0.05
}`
	if err := os.WriteFile(path, []byte(hjson), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.LoadRegistryHJSON(path); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Registry.DiscontinuedModels) != 1 || cfg.Registry.DiscontinuedModels[0] != "tata nano" {
		t.Errorf("discontinued overlay not applied: %v", cfg.Registry.DiscontinuedModels)
	}
	if cfg.Registry.HistoricalDeflation != 0.05 {
		t.Errorf("deflation = %.2f, want 0.05", cfg.Registry.HistoricalDeflation)
	}
	// Fields absent from the overlay keep their defaults.
	if len(cfg.Registry.SegmentMap) == 0 {
		t.Error("segment map should survive a partial overlay")
	}
}
