// Package loadgen drives a running fairway service with synthetic golfer profiles
// and checks the resulting leaderboard for consistency.
package loadgen

import "time"

// Config holds configuration for a load run
type Config struct {
	BaseURL    string        // Base URL of the service
	Players    int           // Number of distinct players to submit
	Replays    float64       // Fraction of submissions re-sent to exercise dedupe
	TopN       int           // Number of top entries to fetch
	Workers    int           // Number of concurrent workers
	Seed       uint64        // Seed for profile generation; same seed, same profiles
	Timeout    time.Duration // HTTP request timeout
	DrainWait  time.Duration // Upper bound on waiting for the queue to drain
	OutputFile string        // Output file for generated submissions
	Verbose    bool          // Enable verbose logging
}

// Submission is the body of POST /profiles
type Submission struct {
	SubmissionID string             `json:"submission_id"`
	PlayerID     string             `json:"player_id"`
	Handicap     float64            `json:"handicap"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Entry represents a leaderboard entry
type Entry struct {
	Rank        int     `json:"rank"`
	PlayerID    string  `json:"player_id"`
	Overall     float64 `json:"overall_score"`
	Handicap    float64 `json:"handicap"`
	ArchetypeID string  `json:"archetype_id"`
}

// AckResponse represents the response from a submission
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics
type Stats struct {
	Generated          int
	Submitted          int
	Accepted           int
	Duplicate          int
	Throttled          int
	Failed             int
	RankingsRetrieved  int
	LeaderboardEntries int
	Archetypes         map[string]int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
