// Package site handles the service's root endpoint.
package site

import (
	"context"
	"encoding/json"
	"net/http"
)

// Register attaches the root route to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", handleRoot)
}

// handleRoot serves a welcome payload at the exact root path. The catch-all
// pattern also makes it the 404 handler for unknown paths.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Welcome to the power plants API!",
	})
}
