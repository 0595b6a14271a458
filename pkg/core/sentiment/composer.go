package sentiment

import (
	"fmt"
	"strings"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

// Composer turns market context (fuel trend, segment demand, brand resale
// strength, macro events) into one multiplicative adjustment. Each factor is
// reported individually so a reviewer can see which lookup moved the price.
type Composer struct {
	cfg      config.SentimentConfig
	segments map[string]string // lowercase model token -> segment key
}

func NewComposer(cfg config.SentimentConfig, registry config.RegistryConfig) *Composer {
	segments := make(map[string]string, len(registry.SegmentMap))
	for k, v := range registry.SegmentMap {
		segments[strings.ToLower(k)] = v
	}
	return &Composer{cfg: cfg, segments: segments}
}

// Result carries the composed multiplier plus its per-factor audit trail.
type Result struct {
	Multiplier float64
	Factors    []models.SentimentFactor
}

// Compose evaluates all four factors for the given vehicle and valuation year.
// A lookup miss never fails the valuation: the factor contributes a neutral
// 1.0 and is marked as a fallback.
func (c *Composer) Compose(vehicle *models.VehicleRecord, year int) Result {
	factors := []models.SentimentFactor{
		c.fuelTrend(vehicle.FuelType, year),
		c.segment(vehicle.Model),
		c.brand(vehicle.Make),
		c.economic(year),
	}

	multiplier := 1.0
	for _, f := range factors {
		multiplier *= f.Multiplier
	}
	return Result{Multiplier: multiplier, Factors: factors}
}

func (c *Composer) fuelTrend(fuel models.FuelType, year int) models.SentimentFactor {
	trend, ok := c.cfg.FuelTrends[fuel]
	if ok {
		if m, ok := trend[year]; ok {
			return models.SentimentFactor{
				Name:       "fuel_trend",
				Multiplier: m,
				Reason:     fmt.Sprintf("%s market trend for %d", fuel, year),
			}
		}
		// No entry for this year: the most recent published year carries
		// forward. Trends are maintained annually, so this only happens
		// when the data hasn't been refreshed yet.
		best, found := 0, false
		for y := range trend {
			if y < year && y > best {
				best, found = y, true
			}
		}
		if found {
			return models.SentimentFactor{
				Name:       "fuel_trend",
				Multiplier: trend[best],
				Reason:     fmt.Sprintf("%s trend carried forward from %d", fuel, best),
				Fallback:   true,
			}
		}
	}
	return models.SentimentFactor{
		Name:       "fuel_trend",
		Multiplier: 1.0,
		Reason:     fmt.Sprintf("no trend data for %s, neutral applied", fuel),
		Fallback:   true,
	}
}

// segment resolves the model to a market segment in two stages: an exact
// token match first, then the longest registry key contained in the model
// name. Equal-length candidates go to the one occurring later in the name,
// so a compound like "Swift Dzire" always lands on the dzire sedan entry,
// not the swift hatchback one.
func (c *Composer) segment(model string) models.SentimentFactor {
	name := strings.ToLower(strings.TrimSpace(model))

	seg, ok := c.segments[name]
	if !ok {
		bestLen, bestPos := 0, -1
		for token, s := range c.segments {
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
		return models.SentimentFactor{
			Name:       "segment",
			Multiplier: 1.0,
			Reason:     fmt.Sprintf("model %q not in segment registry, neutral applied", model),
			Fallback:   true,
		}
	}

	m, found := c.cfg.SegmentMultipliers[seg]
	if !found {
		return models.SentimentFactor{
			Name:       "segment",
			Multiplier: 1.0,
			Reason:     fmt.Sprintf("segment %q has no multiplier, neutral applied", seg),
			Fallback:   true,
		}
	}
	return models.SentimentFactor{
		Name:       "segment",
		Multiplier: m,
		Reason:     fmt.Sprintf("%s segment demand", seg),
	}
}

func (c *Composer) brand(make string) models.SentimentFactor {
	key := strings.ToLower(strings.TrimSpace(make))
	if m, ok := c.cfg.BrandIndex[key]; ok {
		return models.SentimentFactor{
			Name:       "brand",
			Multiplier: m,
			Reason:     fmt.Sprintf("%s brand resale index", make),
		}
	}
	return models.SentimentFactor{
		Name:       "brand",
		Multiplier: 1.0,
		Reason:     fmt.Sprintf("brand %q not indexed, neutral applied", make),
		Fallback:   true,
	}
}

func (c *Composer) economic(year int) models.SentimentFactor {
	if ev, ok := c.cfg.EconomicEvents[year]; ok {
		return models.SentimentFactor{
			Name:       "economic",
			Multiplier: 1.0 + ev.Impact,
			Reason:     ev.Event,
		}
	}
	return models.SentimentFactor{
		Name:       "economic",
		Multiplier: 1.0,
		Reason:     "no significant economic event",
	}
}
