package api

import (
	"context"
	"net/http"

	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
)

// ScoringDependencies defines the synchronous scoring operations.
type ScoringDependencies interface {
	Score(ctx context.Context, in scoring.Input) (scoring.Result, error)
	Classify(ctx context.Context, playerID string, hcp float64, scores map[string]float64) (archetype.Result, error)
	Profile(ctx context.Context, in scoring.Input) (model.Profile, error)
}

// ScoringHandler handles POST /score, /classify and /profile.
type ScoringHandler struct {
	deps ScoringDependencies
}

// NewScoringHandler creates a new scoring handler.
func NewScoringHandler(deps ScoringDependencies) *ScoringHandler {
	return &ScoringHandler{deps: deps}
}

// HandleScore returns the scoring profile of the posted metrics.
func (h *ScoringHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	in, ok := decodeScoreRequest(w, r, op)
	if !ok {
		return
	}
	res, err := h.deps.Score(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newScoringProfile(&res))
}

// HandleClassify returns the golf identity of a posted score vector.
func (h *ScoringHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify"
	var req classifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Handicap == nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, errMissing("handicap")))
		return
	}
	if len(req.Scores) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, errMissing("scores")))
		return
	}
	id, err := h.deps.Classify(r.Context(), req.PlayerID, *req.Handicap, req.Scores)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGolfIdentity(&id))
}

// HandleProfile scores, classifies and records the player.
func (h *ScoringHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.profile"
	in, ok := decodeScoreRequest(w, r, op)
	if !ok {
		return
	}
	if in.PlayerID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, errMissing("player_id")))
		return
	}
	p, err := h.deps.Profile(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(&p))
}

func decodeScoreRequest(w http.ResponseWriter, r *http.Request, op string) (scoring.Input, bool) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return scoring.Input{}, false
	}
	in, err := req.input()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return scoring.Input{}, false
	}
	return in, true
}
