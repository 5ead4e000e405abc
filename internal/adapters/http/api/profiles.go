package api

import (
	"context"
	"net/http"

	service "github.com/okian/fairway/internal/app"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
)

// ProfilesDependencies defines async and batch profile operations.
type ProfilesDependencies interface {
	Submit(ctx context.Context, job model.ProfileJob) (service.SubmitOutcome, error)
	ScoreBatch(ctx context.Context, inputs []scoring.Input) ([]service.BatchItem, error)
}

// ProfilesHandler handles POST /profiles and POST /profiles/batch.
type ProfilesHandler struct {
	deps ProfilesDependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps ProfilesDependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandleSubmit queues a profile. 202 when accepted, 200 for a duplicate submission id,
// 429 when the queue is full.
func (h *ProfilesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	var req submissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	job, err := req.job()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	outcome, err := h.deps.Submit(r.Context(), job)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if outcome == service.SubmitDuplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: string(outcome), Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: string(outcome), Duplicate: false})
}

// HandleBatch scores a list of profiles. Results keep request order; invalid items
// carry an error instead of failing the whole batch.
func (h *ProfilesHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch"
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}

	resp := batchResponse{Results: make([]batchResult, len(req.Profiles))}
	inputs := make([]scoring.Input, 0, len(req.Profiles))
	positions := make([]int, 0, len(req.Profiles))
	for i, p := range req.Profiles {
		resp.Results[i].Index = i
		in, err := p.input()
		if err != nil {
			resp.Results[i].Error = &errorResponse{Code: codeBadRequest, Message: err.Error()}
			resp.Failed++
			continue
		}
		inputs = append(inputs, in)
		positions = append(positions, i)
	}

	if len(req.Profiles) == 0 || len(inputs) > 0 {
		items, err := h.deps.ScoreBatch(r.Context(), inputs)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		for k, item := range items {
			res := &resp.Results[positions[k]]
			if item.Err != nil {
				_, code := classify(item.Err)
				res.Error = &errorResponse{Code: code, Message: item.Err.Error()}
				resp.Failed++
				continue
			}
			pr := newProfileResponse(item.Profile)
			res.profileResponse = &pr
			resp.Succeeded++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
