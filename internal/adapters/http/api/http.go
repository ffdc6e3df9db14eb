// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridlens/gridlens/internal/adapters/source"
	"github.com/gridlens/gridlens/internal/domain/cleaning"
	"github.com/gridlens/gridlens/internal/domain/query"
	"github.com/gridlens/gridlens/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TopPlants(ctx context.Context, n int, metric string) ([]record.Plant, error)
	StatesInfo(ctx context.Context, metric string) (map[string]record.StateSummary, error)
	StateDetail(ctx context.Context, state string) ([]record.Plant, error)
	Reload(ctx context.Context) error
}

// Options bundles the request-handling knobs handlers need from config.
type Options struct {
	// MaxTopLimit caps GET /plants/top?limit.
	MaxTopLimit int
	// DefaultMetric is used when a request omits the metric parameter.
	DefaultMetric string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	topHandler    *TopHandler
	statesHandler *StatesHandler
	stateHandler  *StateHandler
	reloadHandler *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts Options) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		topHandler:    NewTopHandler(deps, opts),
		statesHandler: NewStatesHandler(deps, opts),
		stateHandler:  NewStateHandler(deps),
		reloadHandler: NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/plants/top", MetricsMiddleware(s.topHandler.HandleGetTop, "plants_top"))
	mux.HandleFunc("/plants/states", MetricsMiddleware(s.statesHandler.HandleGetStates, "plants_states"))
	mux.HandleFunc("/plants/state/", MetricsMiddleware(s.stateHandler.HandleGetState, "plants_state"))
	mux.HandleFunc("/admin/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "admin_reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates a typed domain error into an HTTP response:
// validation failures are 400, unknown states are 404, and a dataset that
// never became available is 503.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, query.ErrBadMetric):
		writeError(w, http.StatusBadRequest, "bad_metric", err)
	case errors.Is(err, query.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "invalid_limit", err)
	case errors.Is(err, query.ErrUnknownState):
		writeError(w, http.StatusNotFound, "unknown_state", err)
	case errors.Is(err, source.ErrSourceNotFound),
		errors.Is(err, source.ErrMalformedSource),
		errors.Is(err, cleaning.ErrEmptyDataset):
		writeError(w, http.StatusServiceUnavailable, "dataset_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
