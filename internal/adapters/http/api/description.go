package api

import (
	"context"
	"net/http"

	"github.com/okian/dugout/internal/domain/scouting"
)

// DescriptionDependencies defines the scouting report operation.
type DescriptionDependencies interface {
	Describe(ctx context.Context, id string) (scouting.Report, error)
}

// DescriptionHandler serves scouting reports.
type DescriptionHandler struct {
	deps DescriptionDependencies
}

// NewDescriptionHandler creates a new description handler.
func NewDescriptionHandler(deps DescriptionDependencies) *DescriptionHandler {
	return &DescriptionHandler{deps: deps}
}

// HandleDescribe handles POST /players/{id}/description.
func (h *DescriptionHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.Describe(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
