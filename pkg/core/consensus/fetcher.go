package consensus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vehicle_valuation/pkg/core/pricing"
	"vehicle_valuation/pkg/models"
)

// Fetcher fans one identity lookup out to every registered price source
// concurrently. Slow or failing sources are skipped, not waited for: partial
// results are the normal case, and the resolver grades whatever arrived.
type Fetcher struct {
	sources       []pricing.PriceSource
	sourceTimeout time.Duration
}

func NewFetcher(sources []pricing.PriceSource, sourceTimeout time.Duration) *Fetcher {
	if sourceTimeout <= 0 {
		sourceTimeout = 15 * time.Second
	}
	return &Fetcher{sources: sources, sourceTimeout: sourceTimeout}
}

// FetchAll queries all sources and returns every quote that arrived before
// ctx expired, in source registration order. Per-source failures are reported
// as warnings, never as an error: the only error is a caller-cancelled ctx
// before any source answered.
func (f *Fetcher) FetchAll(ctx context.Context, identity models.VehicleIdentity) ([]models.PriceQuote, []string) {
	type outcome struct {
		index  int
		quotes []models.PriceQuote
		err    error
	}

	results := make(chan outcome, len(f.sources))
	var wg sync.WaitGroup

	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, src pricing.PriceSource) {
			defer wg.Done()
			srcCtx, cancel := context.WithTimeout(ctx, f.sourceTimeout)
			defer cancel()

			start := time.Now()
			quotes, err := src.Fetch(srcCtx, identity)
			if err != nil {
				fmt.Printf("[FETCH] %s failed after %v: %v\n", src.Name(), time.Since(start).Round(time.Millisecond), err)
			} else {
				fmt.Printf("[FETCH] %s returned %d quote(s) in %v\n", src.Name(), len(quotes), time.Since(start).Round(time.Millisecond))
			}
			results <- outcome{index: i, quotes: quotes, err: err}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	byIndex := make([][]models.PriceQuote, len(f.sources))
	var warnings []string
	for out := range results {
		if out.err != nil {
			warnings = append(warnings, fmt.Sprintf("price source %s unavailable: %v", f.sources[out.index].Name(), out.err))
			continue
		}
		byIndex[out.index] = out.quotes
	}

	var all []models.PriceQuote
	for _, quotes := range byIndex {
		all = append(all, quotes...)
	}
	return all, warnings
}
