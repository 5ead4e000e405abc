// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/scoring"
)

// ProfileJob is an asynchronous profile submission waiting in the queue.
type ProfileJob struct {
	SubmissionID string          // unique id for idempotency
	PlayerID     string          // golfer identifier
	Handicap     float64         // handicap index at submission time
	Metrics      scoring.Metrics // raw metrics to score
	ReceivedAt   time.Time
}

// Validate checks the job can be scored.
func (j ProfileJob) Validate() error {
	if j.SubmissionID == "" {
		return ErrMissingSubmissionID
	}
	if j.PlayerID == "" {
		return ErrMissingPlayerID
	}
	if math.IsNaN(j.Handicap) || math.IsInf(j.Handicap, 0) {
		return fmt.Errorf("handicap %v: %w", j.Handicap, scoring.ErrInvalidHandicap)
	}
	return j.Metrics.Validate()
}

// Input converts the job to scoring input.
func (j ProfileJob) Input() scoring.Input {
	return scoring.Input{PlayerID: j.PlayerID, Handicap: j.Handicap, Metrics: j.Metrics}
}

// Profile is a scored and classified player snapshot.
type Profile struct {
	Scoring   scoring.Result   `json:"scoring_profile"`
	Identity  archetype.Result `json:"golf_identity"`
	CreatedAt time.Time        `json:"created_at"`
}

// PlayerScore is what the leaderboard ranks a player by.
type PlayerScore struct {
	PlayerID    string
	Overall     float64
	Handicap    float64
	ArchetypeID archetype.ID
}

// Score extracts the leaderboard view of a profile.
func (p Profile) Score() PlayerScore {
	return PlayerScore{
		PlayerID:    p.Scoring.PlayerID,
		Overall:     p.Scoring.OverallScore,
		Handicap:    p.Scoring.PlayerHCP,
		ArchetypeID: p.Identity.Archetype.ID,
	}
}
