// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gridlens/gridlens/internal/domain/record"
)

// StateDependencies defines the interface for state detail operations.
type StateDependencies interface {
	StateDetail(ctx context.Context, state string) ([]record.Plant, error)
}

// StateHandler handles state detail requests.
type StateHandler struct {
	deps StateDependencies
}

// NewStateHandler creates a new state detail handler.
func NewStateHandler(deps StateDependencies) *StateHandler {
	return &StateHandler{deps: deps}
}

// stateResponse is the payload for GET /plants/state/{code}.
type stateResponse struct {
	State  string         `json:"state"`
	Plants []record.Plant `json:"plants"`
}

// HandleGetState handles GET /plants/state/{code} requests.
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/plants/state/")
	if code == "" || strings.Contains(code, "/") {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("missing state code: %w", ErrBadRequest))
		return
	}

	plants, err := h.deps.StateDetail(r.Context(), code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{
		State:  strings.ToUpper(strings.TrimSpace(code)),
		Plants: plants,
	})
}
