package models

import (
	"fmt"
	"strings"
	"time"
)

// FuelType enumerates the supported fuel variants. It drives the expected
// annual mileage curve and the fuel-trend sentiment lookup.
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelCNG      FuelType = "CNG"
	FuelElectric FuelType = "Electric"
)

// ParseFuelType normalizes free-form fuel strings ("petrol", "PETROL", ...).
func ParseFuelType(s string) (FuelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "petrol", "gasoline":
		return FuelPetrol, nil
	case "diesel":
		return FuelDiesel, nil
	case "cng":
		return FuelCNG, nil
	case "electric", "ev":
		return FuelElectric, nil
	}
	return "", fmt.Errorf("unknown fuel type: %q", s)
}

// ConditionReport is the structured inspection sheet. Pure observation:
// no derived fields, no scoring logic lives here.
type ConditionReport struct {
	FrameDamage     bool   `json:"frame_damage"`
	DentsScratches  string `json:"dents_scratches"` // "None", "Minor", "Moderate", "Severe"
	Repainted       bool   `json:"repainted"`
	RustPresent     bool   `json:"rust_present"`
	EngineSmoke     string `json:"engine_smoke"` // "None", "White", "Black"
	EngineNoise     string `json:"engine_noise"` // "Normal", "Slight", "Heavy"
	TransmissionFeel string `json:"transmission_feel"` // "Smooth", "Rough", "Slipping"
	TireTreadPct    int    `json:"tire_tread_pct"`     // percentage remaining
	Suspension      string `json:"suspension"` // "Excellent", "Good", "Fair", "Poor"
	Brakes          string `json:"brakes"`     // same bands as Suspension
	ACWorking       bool   `json:"ac_working"`
	ElectricalFaults bool  `json:"electrical_faults"`
	Interior        string `json:"interior"` // same bands as Suspension
	ServiceHistory  bool   `json:"service_history"`
	InsuranceValid  bool   `json:"insurance_valid"`
	AccidentHistory bool   `json:"accident_history"`
}

// VehicleIdentity is the lookup key price sources and the historical store
// operate on. It deliberately excludes odometer and condition: two vehicles
// of the same identity share a baseline, not a valuation.
type VehicleIdentity struct {
	Make     string   `json:"make"`
	Model    string   `json:"model"`
	Variant  string   `json:"variant,omitempty"`
	Year     int      `json:"year"`
	FuelType FuelType `json:"fuel_type"`
}

// String renders the identity the way it appears in logs and source queries.
func (id VehicleIdentity) String() string {
	if id.Variant != "" {
		return fmt.Sprintf("%d %s %s %s", id.Year, id.Make, id.Model, id.Variant)
	}
	return fmt.Sprintf("%d %s %s", id.Year, id.Make, id.Model)
}

// VehicleRecord describes one vehicle submitted for valuation.
// Treated as immutable once handed to the pipeline.
type VehicleRecord struct {
	Make             string          `json:"make"`
	Model            string          `json:"model"`
	Variant          string          `json:"variant"`
	Year             int             `json:"year"` // model year / purchase year
	RegistrationDate time.Time       `json:"registration_date"`
	FuelType         FuelType        `json:"fuel_type"`
	OdometerKM       int             `json:"odometer_km"`
	Owners           int             `json:"owners"`
	Transmission     string          `json:"transmission"` // "Manual" or "Automatic"
	Condition        ConditionReport `json:"condition"`
}

// AgeYears returns the fractional age at the given valuation instant.
func (v *VehicleRecord) AgeYears(now time.Time) float64 {
	return now.Sub(v.RegistrationDate).Hours() / 24 / 365.25
}

// Identity projects the record onto its price-lookup key.
func (v *VehicleRecord) Identity() VehicleIdentity {
	return VehicleIdentity{
		Make:     v.Make,
		Model:    v.Model,
		Variant:  v.Variant,
		Year:     v.Year,
		FuelType: v.FuelType,
	}
}

// Validate checks identity fields before any computation is attempted.
// A registration date in the future is caller misuse, not a data gap,
// so it fails here rather than degrading into a flagged result.
func (v *VehicleRecord) Validate(now time.Time) error {
	if strings.TrimSpace(v.Make) == "" {
		return fmt.Errorf("vehicle make is required")
	}
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("vehicle model is required")
	}
	if v.Year < 1980 || v.Year > now.Year()+1 {
		return fmt.Errorf("implausible model year %d", v.Year)
	}
	if v.RegistrationDate.IsZero() {
		return fmt.Errorf("registration date is required")
	}
	if v.RegistrationDate.After(now) {
		return fmt.Errorf("registration date %s is in the future", v.RegistrationDate.Format("2006-01-02"))
	}
	switch v.FuelType {
	case FuelPetrol, FuelDiesel, FuelCNG, FuelElectric:
	default:
		return fmt.Errorf("unknown fuel type: %q", v.FuelType)
	}
	if v.OdometerKM < 0 {
		return fmt.Errorf("odometer reading cannot be negative")
	}
	if v.Owners < 1 {
		return fmt.Errorf("owner count must be at least 1")
	}
	return nil
}
