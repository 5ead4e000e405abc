// Package repository holds the in-memory player leaderboard.
package repository

import (
	"context"
	"time"

	"github.com/okian/fairway/internal/domain/model"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank        int
	PlayerID    string
	Overall     float64
	Handicap    float64
	ArchetypeID string
	UpdatedAt   time.Time
}

// Store provides read/write access to the leaderboard.
type Store interface {
	// Upsert records a player's latest profile, replacing any previous entry even
	// when the new overall score is lower. It reports whether the player is new.
	Upsert(ctx context.Context, score model.PlayerScore) (bool, error)

	// Rank returns the player's current entry. Returns ErrNotFound for unknown players.
	Rank(ctx context.Context, playerID string) (Entry, error)

	// TopN returns the top-N entries ordered by overall score desc, then player id.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of ranked players.
	Count(ctx context.Context) int
}
