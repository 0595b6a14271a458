package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vehicle_valuation/pkg/models"
)

// QuotesRepo archives observed price quotes per vehicle identity and year.
// This is the purchase-year price source for discontinued models: once a
// model leaves the aggregators, the archive is the only record of what it
// sold for new.
//
// Schema assumption (managed by migrations):
//
//	CREATE TABLE IF NOT EXISTS price_quotes (
//	  id BIGSERIAL PRIMARY KEY,
//	  identity TEXT NOT NULL,         -- lowercase "make model variant"
//	  year INT NOT NULL,
//	  source TEXT NOT NULL,
//	  tier TEXT NOT NULL,
//	  price NUMERIC NOT NULL,
//	  url TEXT,
//	  fetched_at TIMESTAMPTZ NOT NULL,
//	  UNIQUE (identity, year, source)
//	);
type QuotesRepo struct{}

func NewQuotesRepo() *QuotesRepo {
	return &QuotesRepo{}
}

// identityKey normalizes the identity for use as the archive key. Year is a
// separate column so one row set covers one model year.
func identityKey(identity models.VehicleIdentity) string {
	combined := identity.Make + " " + identity.Model
	if identity.Variant != "" {
		combined += " " + identity.Variant
	}
	return strings.ToLower(strings.Join(strings.Fields(combined), " "))
}

// Save upserts one quote; re-observing a source for the same identity and
// year overwrites the previous observation.
func (r *QuotesRepo) Save(ctx context.Context, identity models.VehicleIdentity, year int, quote models.PriceQuote) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO price_quotes (identity, year, source, tier, price, url, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (identity, year, source)
		DO UPDATE SET
			tier = EXCLUDED.tier,
			price = EXCLUDED.price,
			url = EXCLUDED.url,
			fetched_at = EXCLUDED.fetched_at;
	`
	fetchedAt := quote.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	if _, err := pool.Exec(ctx, query, identityKey(identity), year, quote.Source, string(quote.Tier), quote.Price, quote.URL, fetchedAt); err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// SaveAll archives a batch of quotes, typically everything one fetch round
// produced. Failures stop the batch: partial archives are better detected
// than silently tolerated.
func (r *QuotesRepo) SaveAll(ctx context.Context, identity models.VehicleIdentity, year int, quotes []models.PriceQuote) error {
	for _, q := range quotes {
		if err := r.Save(ctx, identity, year, q); err != nil {
			return err
		}
	}
	return nil
}

// QuotesAt returns the archived quotes for an identity and year. Implements
// the baseline selector's HistoricalSource.
func (r *QuotesRepo) QuotesAt(ctx context.Context, identity models.VehicleIdentity, year int) ([]models.PriceQuote, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT source, tier, price, url, fetched_at
		FROM price_quotes
		WHERE identity = $1 AND year = $2
		ORDER BY fetched_at DESC;
	`
	rows, err := pool.Query(ctx, query, identityKey(identity), year)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []models.PriceQuote
	for rows.Next() {
		var q models.PriceQuote
		var tier string
		if err := rows.Scan(&q.Source, &tier, &q.Price, &q.URL, &q.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.Tier = models.SourceTier(tier)
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quote row iteration: %w", err)
	}
	return quotes, nil
}
