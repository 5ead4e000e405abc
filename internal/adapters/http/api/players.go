package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/fairway/internal/adapters/storage"
)

// PlayersDependencies defines per-player reads.
type PlayersDependencies interface {
	Rank(ctx context.Context, playerID string) (Entry, error)
	History(ctx context.Context, playerID string, limit int) ([]storage.Snapshot, error)
}

// PlayersHandler handles GET /players/{id} and GET /players/{id}/history.
type PlayersHandler struct {
	deps     PlayersDependencies
	maxLimit int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies, maxLimit int) *PlayersHandler {
	return &PlayersHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetRank returns the player's leaderboard entry.
func (h *PlayersHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, errMissing("player id")))
		return
	}
	entry, err := h.deps.Rank(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type historyResponse struct {
	PlayerID  string             `json:"player_id"`
	Snapshots []storage.Snapshot `json:"snapshots"`
}

// HandleGetHistory returns stored snapshots, newest first.
func (h *PlayersHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, errMissing("player id")))
		return
	}
	limit, err := queryLimit(r, min(defaultHistoryLimit, h.maxLimit), h.maxLimit)
	if err != nil {
		writeServiceError(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	snaps, err := h.deps.History(r.Context(), id, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{PlayerID: id, Snapshots: snaps})
}
