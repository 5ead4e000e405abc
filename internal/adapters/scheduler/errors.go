package scheduler

import "errors"

var (
	// ErrInvalidJob indicates a job without a name, task or positive interval.
	ErrInvalidJob = errors.New("invalid job")
	// ErrStarted is returned when jobs are added after Start.
	ErrStarted = errors.New("scheduler already started")
)
