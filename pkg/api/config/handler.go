package config

import (
	"encoding/json"
	"net/http"

	coreconfig "vehicle_valuation/pkg/core/config"
)

// Handler exposes the engine's active calibration read-only, so operators can
// verify which schedule a deployment is running without shell access.
type Handler struct {
	Cfg *coreconfig.Config
}

func NewHandler(cfg *coreconfig.Config) *Handler {
	return &Handler{Cfg: cfg}
}

type response struct {
	Depreciation coreconfig.DepreciationConfig `json:"depreciation"`
	Usage        coreconfig.UsageConfig        `json:"usage"`
	Consensus    coreconfig.ConsensusConfig    `json:"consensus"`
	Transaction  coreconfig.TransactionConfig  `json:"transaction"`
	Discontinued int                           `json:"discontinued_models"`
	Segments     int                           `json:"segment_entries"`
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	resp := response{
		Depreciation: h.Cfg.Depreciation,
		Usage:        h.Cfg.Usage,
		Consensus:    h.Cfg.Consensus,
		Transaction:  h.Cfg.Transaction,
		Discontinued: len(h.Cfg.Registry.DiscontinuedModels),
		Segments:     len(h.Cfg.Registry.SegmentMap),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
