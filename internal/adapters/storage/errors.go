package storage

import "errors"

var (
	// ErrInvalidSnapshot indicates a snapshot without a player id or payload.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrInvalidLimit indicates a non-positive list limit.
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("history store closed")
)
