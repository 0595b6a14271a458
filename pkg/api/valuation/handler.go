package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vehicle_valuation/pkg/core/pipeline"
	"vehicle_valuation/pkg/core/report"
	"vehicle_valuation/pkg/core/store"
	"vehicle_valuation/pkg/models"
)

// Handler serves the valuation endpoints. The repo is optional: with no
// database configured, valuations are computed but not archived.
type Handler struct {
	Pipeline *pipeline.Pipeline
	Repo     *store.ValuationRepo
	Reports  *report.Generator
}

func NewHandler(p *pipeline.Pipeline, repo *store.ValuationRepo) *Handler {
	return &Handler{Pipeline: p, Repo: repo, Reports: report.NewGenerator()}
}

type valuationResponse struct {
	Result *models.ValuationResult `json:"result"`
	Report string                  `json:"report,omitempty"`
}

// HandleValuate processes POST /api/valuate: a VehicleRecord in, the full
// ValuationResult out. ?report=1 adds the rendered Markdown report.
func (h *Handler) HandleValuate(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var vehicle models.VehicleRecord
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	result, err := h.Pipeline.Valuate(ctx, &vehicle)
	if err != nil {
		fmt.Printf("[API] valuation failed: %v\n", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if h.Repo != nil {
		if err := h.Repo.Save(ctx, vehicle.Identity(), result); err != nil {
			// Archiving is best-effort; the valuation itself succeeded.
			fmt.Printf("[WARNING] failed to archive valuation %s: %v\n", result.RequestID, err)
		}
	}

	resp := valuationResponse{Result: result}
	if r.URL.Query().Get("report") == "1" {
		doc, err := h.Reports.Render(&vehicle, result, time.Now())
		if err != nil {
			fmt.Printf("[WARNING] report rendering failed for %s: %v\n", result.RequestID, err)
		} else {
			resp.Report = doc
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleGetValuation serves GET /api/valuations?id=<request_id> from the
// archive.
func (h *Handler) HandleGetValuation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if h.Repo == nil {
		http.Error(w, "valuation archive is not configured", http.StatusServiceUnavailable)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	result, err := h.Repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
