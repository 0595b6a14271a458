package config

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// LoadRegistryHJSON overlays the model registries from an Hjson file.
// The registries are curated by hand (which models left production, which
// token maps to which segment), so the file format allows comments and
// unquoted keys; Hjson handles both.
func (c *Config) LoadRegistryHJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	var reg RegistryConfig
	if err := hjson.Unmarshal(data, &reg); err != nil {
		return fmt.Errorf("failed to parse registry %s: %w", path, err)
	}

	if len(reg.DiscontinuedModels) > 0 {
		c.Registry.DiscontinuedModels = reg.DiscontinuedModels
	}
	if len(reg.SegmentMap) > 0 {
		c.Registry.SegmentMap = reg.SegmentMap
	}
	if len(reg.SegmentBasePrices) > 0 {
		c.Registry.SegmentBasePrices = reg.SegmentBasePrices
	}
	if reg.HistoricalDeflation > 0 {
		c.Registry.HistoricalDeflation = reg.HistoricalDeflation
	}
	return nil
}
