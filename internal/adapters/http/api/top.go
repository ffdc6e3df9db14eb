// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gridlens/gridlens/internal/domain/record"
)

// TopDependencies defines the interface for top-plants operations.
type TopDependencies interface {
	TopPlants(ctx context.Context, n int, metric string) ([]record.Plant, error)
}

// TopHandler handles top-plants requests.
type TopHandler struct {
	deps          TopDependencies
	maxLimit      int
	defaultMetric string
}

// NewTopHandler creates a new top-plants handler.
func NewTopHandler(deps TopDependencies, opts Options) *TopHandler {
	return &TopHandler{
		deps:          deps,
		maxLimit:      opts.MaxTopLimit,
		defaultMetric: opts.DefaultMetric,
	}
}

// topResponse is the payload for GET /plants/top.
type topResponse struct {
	Metric string         `json:"metric"`
	Plants []record.Plant `json:"plants"`
}

// HandleGetTop handles GET /plants/top?limit=N&metric=M requests.
func (h *TopHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("limit %q: %w", limitStr, ErrBadRequest))
		return
	}
	if h.maxLimit > 0 && n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded",
			fmt.Errorf("limit %d exceeds maximum %d: %w", n, h.maxLimit, ErrBadRequest))
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = h.defaultMetric
	}

	plants, err := h.deps.TopPlants(r.Context(), n, metric)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topResponse{Metric: metric, Plants: plants})
}
