package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotStarted        = errors.New("service not started")
	ErrShuttingDown      = errors.New("service shutting down")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrBackpressure      = errors.New("submission queue full")
	ErrHistoryDisabled   = errors.New("history disabled")
	ErrEmptyBatch        = errors.New("empty batch")
	ErrBatchTooLarge     = errors.New("batch too large")
)
