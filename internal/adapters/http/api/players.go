package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/dugout/internal/domain/model"
)

// PlayersDependencies defines the player read and edit operations.
type PlayersDependencies interface {
	Players(ctx context.Context, sortField string, desc bool) ([]model.Player, error)
	Player(ctx context.Context, id string) (model.Player, error)
	UpdatePlayer(ctx context.Context, id string, patch model.Override) (model.Player, error)
}

// PlayersHandler serves the /players resource.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleList handles GET /players?sort=<field>&order=asc|desc.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var desc bool
	switch order := strings.ToLower(q.Get("order")); order {
	case "", "asc":
	case "desc":
		desc = true
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: order must be asc or desc", ErrBadRequest))
		return
	}

	players, err := h.deps.Players(r.Context(), q.Get("sort"), desc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleGet handles GET /players/{id}.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Player(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandlePatch handles PATCH /players/{id}.
func (h *PlayersHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	patch, err := decodePatch(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	p, err := h.deps.UpdatePlayer(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
