/*
handlers.go - HTTP API handlers for the fulfillment analytics engine

PURPOSE:
  Exposes the aggregation engine's query functions via REST. Handlers
  parse the filter query parameters, narrow the fact table, call the
  engine, and serialize the result.

ENDPOINTS:
  GET  /api/dimensions            Reference data (filter dropdowns)
  GET  /api/dataset               Current dataset info (seed, window)
  POST /api/dataset/reset         Regenerate facts with a new seed
  GET  /api/metrics/overview      Overall KPI set
  GET  /api/metrics/brands        Per-brand metrics
  GET  /api/metrics/stores        Per-store bottleneck view
  GET  /api/metrics/methods       Per-method metrics
  GET  /api/metrics/trends/daily  Daily trend series
  GET  /api/metrics/wow           Week-over-week comparison
  GET  /api/metrics/data-quality  Reconciliation metrics

FILTERING:
  Metric endpoints accept repeatable query params `brand`, `store`, and
  `method` (dimension ids; values within a param OR-combine, different
  params AND-combine) plus `days=N` (trailing N days of the window).
  Unknown ids are a 400; an over-constrained filter that matches nothing
  is NOT an error - the engine renders a well-defined zero state.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: malformed or unknown filter values, bad request bodies
  - 500: dataset regeneration failures

SEE ALSO:
  - dto.go: envelope types
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/meridian/fulfillment-analytics/metrics"
	"github.com/meridian/fulfillment-analytics/star"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the loaded dataset and the engine computing over it.
// The dataset pointer is swapped atomically on reset; the datasets
// themselves are immutable, so readers never need more than the pointer.
type Handler struct {
	mu      sync.RWMutex
	dataset *star.Dataset
	engine  *metrics.Engine
}

// NewHandler creates a handler serving the given dataset.
func NewHandler(ds *star.Dataset) *Handler {
	return &Handler{
		dataset: ds,
		engine:  metrics.NewEngine(ds.Config),
	}
}

// snapshot returns the current dataset and engine under the read lock.
func (h *Handler) snapshot() (*star.Dataset, *metrics.Engine) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dataset, h.engine
}

// =============================================================================
// DIMENSION & DATASET ENDPOINTS
// =============================================================================

// GetDimensions returns the full reference data.
func (h *Handler) GetDimensions(w http.ResponseWriter, r *http.Request) {
	ds, _ := h.snapshot()
	writeJSON(w, http.StatusOK, DimensionsResponse{
		Brands:  ds.Dimensions.Brands,
		Stores:  ds.Dimensions.Stores,
		Methods: ds.Dimensions.Methods,
		Time:    ds.Dimensions.Time,
	})
}

// GetDatasetInfo describes the currently loaded dataset.
func (h *Handler) GetDatasetInfo(w http.ResponseWriter, r *http.Request) {
	ds, _ := h.snapshot()
	writeJSON(w, http.StatusOK, datasetInfo(ds))
}

// ResetDataset regenerates the facts with the requested (or a clock-
// derived) seed. Dev tool: the dashboard's "new sample" button.
func (h *Handler) ResetDataset(w http.ResponseWriter, r *http.Request) {
	var req ResetDatasetRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	h.mu.RLock()
	cfg := h.dataset.Config
	h.mu.RUnlock()

	ds, err := star.NewDataset(cfg, seed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to regenerate dataset", err)
		return
	}

	h.mu.Lock()
	h.dataset = ds
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, datasetInfo(ds))
}

func datasetInfo(ds *star.Dataset) DatasetInfoResponse {
	return DatasetInfoResponse{
		Seed:       ds.Seed,
		WindowDays: ds.Config.WindowDays,
		AnchorDate: ds.Anchor().String(),
		FactCount:  len(ds.Facts),
	}
}

// =============================================================================
// METRIC ENDPOINTS
// =============================================================================

// GetOverview returns the overall KPI set for the filtered subset.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.Overall(facts))
}

// GetBrandMetrics returns per-brand metrics for the filtered subset.
func (h *Handler) GetBrandMetrics(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.ByBrand(facts, ds.Dimensions.Brands))
}

// GetStoreMetrics returns the per-store bottleneck view.
func (h *Handler) GetStoreMetrics(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.ByStore(facts, ds.Dimensions.Stores, ds.Dimensions.Brands))
}

// GetMethodMetrics returns per-fulfillment-method metrics.
func (h *Handler) GetMethodMetrics(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.ByMethod(facts, ds.Dimensions.Methods))
}

// GetDailyTrends returns the daily trend series over the whole window.
func (h *Handler) GetDailyTrends(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.DailyTrends(facts, ds.Dimensions.Time))
}

// GetWoW returns the week-over-week comparison anchored at the
// dataset's anchor date.
func (h *Handler) GetWoW(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.WeekOverWeek(facts, ds.Anchor()))
}

// GetDataQuality returns the reconciliation metrics.
func (h *Handler) GetDataQuality(w http.ResponseWriter, r *http.Request) {
	ds, eng := h.snapshot()
	facts, err := h.filteredFacts(ds, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err)
		return
	}
	writeJSON(w, http.StatusOK, eng.DataQuality(facts, ds.Dimensions.Time))
}

// =============================================================================
// FILTER PARSING
// =============================================================================

// filteredFacts parses the filter params and narrows the fact table.
func (h *Handler) filteredFacts(ds *star.Dataset, r *http.Request) ([]star.FulfillmentFact, error) {
	f, err := parseFilter(ds, r)
	if err != nil {
		return nil, err
	}
	return star.FilterFacts(ds.Facts, f), nil
}

func parseFilter(ds *star.Dataset, r *http.Request) (star.Filter, error) {
	var f star.Filter
	q := r.URL.Query()

	for _, raw := range q["brand"] {
		id, err := parseID(raw, "brand")
		if err != nil {
			return star.Filter{}, err
		}
		if _, ok := ds.BrandByID(star.BrandID(id)); !ok {
			return star.Filter{}, &star.ReferentialIntegrityError{Dimension: "brand", Key: id, ReferencedBy: "filter"}
		}
		f.Brands = append(f.Brands, star.BrandID(id))
	}
	for _, raw := range q["store"] {
		id, err := parseID(raw, "store")
		if err != nil {
			return star.Filter{}, err
		}
		if _, ok := ds.StoreByID(star.StoreID(id)); !ok {
			return star.Filter{}, &star.ReferentialIntegrityError{Dimension: "store", Key: id, ReferencedBy: "filter"}
		}
		f.Stores = append(f.Stores, star.StoreID(id))
	}
	for _, raw := range q["method"] {
		id, err := parseID(raw, "method")
		if err != nil {
			return star.Filter{}, err
		}
		if _, ok := ds.MethodByID(star.MethodID(id)); !ok {
			return star.Filter{}, &star.ReferentialIntegrityError{Dimension: "method", Key: id, ReferencedBy: "filter"}
		}
		f.Methods = append(f.Methods, star.MethodID(id))
	}

	if raw := q.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			return star.Filter{}, errors.New("days must be a positive integer")
		}
		f.From = ds.Anchor().AddDays(-(days - 1))
		f.To = ds.Anchor()
	}

	return f, nil
}

func parseID(raw, dimension string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(dimension + " must be an integer id")
	}
	return id, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
