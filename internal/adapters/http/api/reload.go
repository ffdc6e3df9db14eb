// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ReloadDependencies defines the interface for dataset reload operations.
type ReloadDependencies interface {
	Reload(ctx context.Context) error
}

// ReloadHandler handles administrative dataset reloads.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /admin/reload requests. The dataset is replaced
// wholesale; on failure the previous dataset keeps serving.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.Reload(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
