// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry
type Entry struct {
	Rank        int     `json:"rank"`
	PlayerID    string  `json:"player_id"`
	Overall     float64 `json:"overall_score"`
	Handicap    float64 `json:"handicap"`
	ArchetypeID string  `json:"archetype_id"`
}
