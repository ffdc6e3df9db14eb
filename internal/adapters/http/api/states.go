// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/gridlens/gridlens/internal/domain/record"
)

// StatesDependencies defines the interface for per-state summary operations.
type StatesDependencies interface {
	StatesInfo(ctx context.Context, metric string) (map[string]record.StateSummary, error)
}

// StatesHandler handles per-state summary requests.
type StatesHandler struct {
	deps          StatesDependencies
	defaultMetric string
}

// NewStatesHandler creates a new states handler.
func NewStatesHandler(deps StatesDependencies, opts Options) *StatesHandler {
	return &StatesHandler{deps: deps, defaultMetric: opts.DefaultMetric}
}

// statesResponse is the payload for GET /plants/states.
type statesResponse struct {
	Metric string                         `json:"metric"`
	States map[string]record.StateSummary `json:"states"`
}

// HandleGetStates handles GET /plants/states?metric=M requests.
func (h *StatesHandler) HandleGetStates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = h.defaultMetric
	}

	info, err := h.deps.StatesInfo(r.Context(), metric)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statesResponse{Metric: metric, States: info})
}
