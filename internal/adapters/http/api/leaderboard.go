package api

import (
	"context"
	"fmt"
	"net/http"
)

// LeaderboardDependencies reads the head of the overall-score ranking.
type LeaderboardDependencies interface {
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// LeaderboardHandler serves GET /leaderboard.
type LeaderboardHandler struct {
	deps         LeaderboardDependencies
	defaultLimit int
	maxLimit     int
}

func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:         deps,
		defaultLimit: min(defaultLeaderboardLimit, maxLimit),
		maxLimit:     maxLimit,
	}
}

// HandleGetLeaderboard returns up to ?limit players, best overall score first.
// Without a limit it falls back to the default page size.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	n, err := queryLimit(r, h.defaultLimit, h.maxLimit)
	if err != nil {
		writeServiceError(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeServiceError(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
