package consensus

import (
	"sort"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

// Resolver collapses raw quotes from independent sources into a single
// consensus price with a confidence grade. The procedure is deliberately
// simple and fully inspectable: sort, trim outliers, measure spread, grade.
type Resolver struct {
	cfg config.ConsensusConfig
}

func NewResolver(cfg config.ConsensusConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve grades agreement across the given quotes.
//
// Quotes more than OutlierFactor away from the median (in either direction)
// are excluded from the agreement set but still counted in SourceCount, so a
// single scraped-wrong price cannot poison the consensus yet stays visible
// in the audit trail.
func (r *Resolver) Resolve(quotes []models.PriceQuote) models.ConsensusPrice {
	if len(quotes) == 0 {
		return models.ConsensusPrice{Confidence: models.ConfidenceFailed}
	}

	sources := make([]string, 0, len(quotes))
	for _, q := range quotes {
		sources = append(sources, q.Source)
	}

	agreement := r.trimOutliers(quotes)
	hasOfficial := false
	for _, q := range agreement {
		if q.Tier == models.TierOfficial {
			hasOfficial = true
		}
	}

	if len(agreement) == 1 {
		return models.ConsensusPrice{
			Price:       agreement[0].Price,
			Confidence:  models.ConfidenceLow,
			SourceCount: len(quotes),
			AgreeCount:  1,
			HasOfficial: hasOfficial,
			Sources:     sources,
		}
	}

	spread := spreadPct(agreement)
	med := median(agreement)

	cp := models.ConsensusPrice{
		SourceCount: len(quotes),
		AgreeCount:  len(agreement),
		Spread:      spread,
		HasOfficial: hasOfficial,
		Sources:     sources,
	}

	switch {
	case spread > r.cfg.FailureSpreadPct:
		// Sources disagree too much to trust any statistic. The median is
		// still reported so a human has a starting point.
		cp.Price = med
		cp.Confidence = models.ConfidenceFailed
		cp.ManualVerification = true

	case len(agreement) >= 3 && spread <= r.cfg.TightAgreementPct:
		cp.Price = med
		cp.Confidence = models.ConfidenceHigh
		if hasOfficial {
			cp.Confidence = models.ConfidenceVeryHigh
		}

	case len(agreement) == 2 && spread <= r.cfg.LooseAgreementPct:
		cp.Price = (agreement[0].Price + agreement[1].Price) / 2
		cp.Confidence = models.ConfidenceMedium

	default:
		// Agreement exists but is loose: two quotes beyond the medium band,
		// or three-plus beyond the tight band, all inside the failure spread.
		cp.Price = med
		cp.Confidence = models.ConfidenceLow
	}

	return cp
}

func (r *Resolver) trimOutliers(quotes []models.PriceQuote) []models.PriceQuote {
	if len(quotes) < 3 || r.cfg.OutlierFactor <= 1 {
		return quotes
	}
	med := median(quotes)
	kept := quotes[:0:0]
	for _, q := range quotes {
		if q.Price > med*r.cfg.OutlierFactor || q.Price < med/r.cfg.OutlierFactor {
			continue
		}
		kept = append(kept, q)
	}
	return kept
}

func median(quotes []models.PriceQuote) float64 {
	prices := make([]float64, len(quotes))
	for i, q := range quotes {
		prices[i] = q.Price
	}
	sort.Float64s(prices)
	n := len(prices)
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}

// spreadPct is (max-min)/mean expressed in percent.
func spreadPct(quotes []models.PriceQuote) float64 {
	min, max, sum := quotes[0].Price, quotes[0].Price, 0.0
	for _, q := range quotes {
		if q.Price < min {
			min = q.Price
		}
		if q.Price > max {
			max = q.Price
		}
		sum += q.Price
	}
	mean := sum / float64(len(quotes))
	if mean == 0 {
		return 0
	}
	return (max - min) / mean * 100
}
