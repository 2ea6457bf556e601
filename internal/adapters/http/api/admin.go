package api

import (
	"context"
	"net/http"
)

// AdminDependencies defines operational hooks.
type AdminDependencies interface {
	Refresh(ctx context.Context) error
}

// AdminHandler serves /admin routes.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type refreshResponse struct {
	Status string `json:"status"`
}

// HandleRefresh handles POST /admin/refresh by dropping the upstream cache.
func (h *AdminHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Refresh(r.Context()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Status: "refreshed"})
}
