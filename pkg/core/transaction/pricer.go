package transaction

import (
	"math"

	"vehicle_valuation/pkg/core/config"
	"vehicle_valuation/pkg/models"
)

// Pricer derives the four transaction-context prices from one fair market
// value. FMV is defined as the consumer-to-consumer price; every other
// context is a deterministic function of it, which is what guarantees the
// price ordering B2B <= C2B <= C2C <= B2C.
type Pricer struct {
	cfg config.TransactionConfig
}

func NewPricer(cfg config.TransactionConfig) *Pricer {
	return &Pricer{cfg: cfg}
}

// Price computes all four contexts, rounded to the nearest rupee.
//
//	C2C: FMV itself
//	C2B: dealer procurement, FMV minus the dealer margin
//	B2C: dealer retail, FMV + margin + tax on the margin
//	B2B: wholesale, FMV minus the combined margin+discount haircut
func (p *Pricer) Price(fmv float64) models.TransactionPrices {
	margin := fmv * p.cfg.DealerMargin
	return models.TransactionPrices{
		C2C: math.Round(fmv),
		C2B: math.Round(fmv * (1 - p.cfg.DealerMargin)),
		B2C: math.Round(fmv + margin + margin*p.cfg.TaxRate),
		B2B: math.Round(fmv * (1 - p.cfg.DealerMargin - p.cfg.WholesaleDiscount)),
	}
}

// TradeInRange is the negotiation band quoted to a seller at procurement:
// the buffer below C2B up to C2B itself.
func (p *Pricer) TradeInRange(prices models.TransactionPrices) (min, max float64) {
	return math.Round(prices.C2B * (1 - p.cfg.TradeInBufferPct)), prices.C2B
}
