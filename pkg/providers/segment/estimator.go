// Package segment provides the last-resort baseline estimator: when no live
// or historical quote exists, the vehicle's market segment gives a ballpark
// new price that keeps the valuation alive (flagged as an estimate).
package segment

import (
	"fmt"
	"strings"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

type Estimator struct {
	segments map[string]string
	prices   map[string]float64
}

func NewEstimator(registry config.RegistryConfig) *Estimator {
	segments := make(map[string]string, len(registry.SegmentMap))
	for k, v := range registry.SegmentMap {
		segments[strings.ToLower(k)] = v
	}
	return &Estimator{segments: segments, prices: registry.SegmentBasePrices}
}

func (e *Estimator) Name() string { return "segment-estimate" }

// Estimate returns the segment's seed price. Resolution mirrors the
// sentiment segment lookup: exact model token first, then the longest
// registry token contained in the model name, with equal-length ties
// going to the token occurring later in the name.
func (e *Estimator) Estimate(identity models.VehicleIdentity) (float64, error) {
	name := strings.ToLower(strings.TrimSpace(identity.Model))

	seg, ok := e.segments[name]
	if !ok {
		bestLen, bestPos := 0, -1
		for token, s := range e.segments {
			pos := strings.Index(name, token)
			if pos < 0 {
				continue
			}
			if len(token) > bestLen || (len(token) == bestLen && pos > bestPos) {
				seg, bestLen, bestPos, ok = s, len(token), pos, true
			}
		}
	}
	if !ok {
		return 0, fmt.Errorf("model %q is not in the segment registry", identity.Model)
	}

	price, found := e.prices[seg]
	if !found {
		return 0, fmt.Errorf("segment %q has no base price", seg)
	}
	return price, nil
}
