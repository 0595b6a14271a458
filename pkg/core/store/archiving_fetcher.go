package store

import (
	"context"
	"fmt"
	"time"

	"vehicle_valuation/pkg/models"
)

// quoteFetcher matches the consensus fetcher's fan-out surface.
type quoteFetcher interface {
	FetchAll(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, []string)
}

// quoteArchiver matches the QuotesRepo write surface.
type quoteArchiver interface {
	SaveAll(ctx context.Context, identity models.VehicleIdentity, year int, quotes []models.PriceQuote) error
}

// ArchivingFetcher wraps a quote fetcher and records each fetch round in the
// price_quotes archive under the current year. Today's live observations are
// what QuotesAt serves back once the model is discontinued, so the archive
// only grows while a model is still being quoted.
type ArchivingFetcher struct {
	inner   quoteFetcher
	archive quoteArchiver
	year    func() int
}

func NewArchivingFetcher(inner quoteFetcher, archive quoteArchiver) *ArchivingFetcher {
	return &ArchivingFetcher{
		inner:   inner,
		archive: archive,
		year:    func() int { return time.Now().Year() },
	}
}

// FetchAll fans out through the wrapped fetcher and archives whatever came
// back. An archive failure never blocks the valuation: it is logged and the
// quotes pass through untouched.
func (f *ArchivingFetcher) FetchAll(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, []string) {
	quotes, warnings := f.inner.FetchAll(ctx, identity)
	if len(quotes) > 0 {
		if err := f.archive.SaveAll(ctx, identity, f.year(), quotes); err != nil {
			fmt.Printf("[WARNING] quote archive write failed for %s: %v\n", identity.String(), err)
		}
	}
	return quotes, warnings
}
