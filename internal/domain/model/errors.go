package model

import "errors"

var (
	// ErrMissingSubmissionID is returned for a job without an idempotency key.
	ErrMissingSubmissionID = errors.New("missing submission id")
	// ErrMissingPlayerID is returned for a job without a player.
	ErrMissingPlayerID = errors.New("missing player id")
)
