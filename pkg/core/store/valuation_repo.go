package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"vehicle_valuation/pkg/models"
)

// ValuationRepo persists completed valuations for audit. One row per request,
// full result as a JSONB blob; the few columns pulled out are the ones audit
// queries filter on.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS valuations (
//	  request_id UUID PRIMARY KEY,
//	  identity TEXT NOT NULL,
//	  fmv NUMERIC NOT NULL,
//	  manual_verification BOOLEAN NOT NULL,
//	  result_json JSONB NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type ValuationRepo struct{}

func NewValuationRepo() *ValuationRepo {
	return &ValuationRepo{}
}

// Save upserts the result keyed by its request ID, so a retried save of the
// same request is idempotent.
func (r *ValuationRepo) Save(ctx context.Context, identity models.VehicleIdentity, result *models.ValuationResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO valuations (request_id, identity, fmv, manual_verification, result_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (request_id)
		DO UPDATE SET
			identity = EXCLUDED.identity,
			fmv = EXCLUDED.fmv,
			manual_verification = EXCLUDED.manual_verification,
			result_json = EXCLUDED.result_json;
	`
	_, err = pool.Exec(ctx, query, result.RequestID, identityKey(identity), result.FairMarketValue,
		result.ManualVerificationRequired, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save valuation: %w", err)
	}
	return nil
}

// Load retrieves one archived valuation by request ID.
func (r *ValuationRepo) Load(ctx context.Context, requestID string) (*models.ValuationResult, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT result_json FROM valuations WHERE request_id = $1`

	var jsonData []byte
	if err := pool.QueryRow(ctx, query, requestID).Scan(&jsonData); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no valuation found for request %s", requestID)
		}
		return nil, fmt.Errorf("failed to load valuation: %w", err)
	}

	var result models.ValuationResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal valuation: %w", err)
	}
	return &result, nil
}
