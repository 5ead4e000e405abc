package api

import (
	"context"
	"net/http"

	"github.com/okian/fairway/internal/domain/timeline"
)

// TimelineDependencies defines the identity timeline operation.
type TimelineDependencies interface {
	Timeline(ctx context.Context, req timeline.Request) ([]timeline.Period, error)
}

// TimelineHandler handles POST /timeline.
type TimelineHandler struct {
	deps TimelineDependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps TimelineDependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

type timelineResponse struct {
	PlayerID string            `json:"player_id"`
	Periods  []timeline.Period `json:"periods"`
}

// HandleTimeline builds the player's identity periods from dated shots and rounds.
func (h *TimelineHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.timeline"
	var req timeline.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	if req.WindowDays < 0 || req.StepDays < 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, timeline.ErrInvalidWindow))
		return
	}
	periods, err := h.deps.Timeline(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timelineResponse{PlayerID: req.PlayerID, Periods: periods})
}
