package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/fairway/internal/adapters/repository"
	"github.com/okian/fairway/internal/adapters/storage"
	service "github.com/okian/fairway/internal/app"
	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/internal/domain/timeline"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrLimitTooHigh = errors.New("limit exceeds maximum")
)

// Error codes carried in errorResponse.Code.
const (
	codeBadRequest    = "bad_request"
	codeLimitExceeded = "limit_exceeded"
	codeNotFound      = "not_found"
	codeBackpressure  = "backpressure"
	codeUnavailable   = "unavailable"
	codeInternal      = "internal_error"
)

// wrapKind annotates err with the operation and an API error kind.
func wrapKind(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// classify maps service and domain errors to a status code and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrLimitTooHigh):
		return http.StatusBadRequest, codeLimitExceeded
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, scoring.ErrInvalidMetric),
		errors.Is(err, scoring.ErrInvalidHandicap),
		errors.Is(err, scoring.ErrUnknownDimension),
		errors.Is(err, scoring.ErrScoreOutOfRange),
		errors.Is(err, timeline.ErrInvalidDate),
		errors.Is(err, timeline.ErrInvalidWindow),
		errors.Is(err, model.ErrMissingPlayerID),
		errors.Is(err, model.ErrMissingSubmissionID),
		errors.Is(err, service.ErrInvalidSubmission),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, storage.ErrInvalidLimit):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, archetype.ErrUnknownArchetype):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, codeBackpressure
	case errors.Is(err, service.ErrHistoryDisabled),
		errors.Is(err, service.ErrNotStarted),
		errors.Is(err, service.ErrShuttingDown):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeServiceError writes err with the status classify picks for it.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
