package timeline

import "strings"

// Club is the normalized club family a shot was hit with.
type Club string

const (
	ClubDriver Club = "driver"
	Club7Iron  Club = "7iron"
	ClubPW     Club = "pw"
	ClubOther  Club = "other"
)

// Launch-monitor club codes seen in exports.
var clubCodes = map[string]Club{
	"dr":         ClubDriver,
	"driver":     ClubDriver,
	"7i":         Club7Iron,
	"7 iron":     Club7Iron,
	"7iron":      Club7Iron,
	"pw":         ClubPW,
	"pitching w": ClubPW,
}

// ParseClub maps a club code to its family. Unknown codes are ClubOther.
func ParseClub(code string) Club {
	if c, ok := clubCodes[strings.ToLower(strings.TrimSpace(code))]; ok {
		return c
	}
	return ClubOther
}

// Shot is one launch-monitor or on-course shot. Sensor values are optional.
type Shot struct {
	Date        Date     `json:"date"`
	Source      string   `json:"source,omitempty"`
	Club        string   `json:"club"`
	Hole        int      `json:"hole,omitempty"`
	BallSpeed   *float64 `json:"ball_speed_kmh,omitempty"`
	ClubSpeed   *float64 `json:"club_speed_kmh,omitempty"`
	Carry       *float64 `json:"carry_m,omitempty"`
	Lateral     *float64 `json:"lateral_m,omitempty"`
	LaunchAngle *float64 `json:"launch_angle_deg,omitempty"`
	FaceToPath  *float64 `json:"face_to_path_deg,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Round is one completed 18-hole scorecard. Only the score is required.
type Round struct {
	Date             Date     `json:"date"`
	Score            float64  `json:"score"`
	Putts            *float64 `json:"putts,omitempty"`
	FairwaysHit      *int     `json:"fairways_hit,omitempty"`
	FairwaysPossible *int     `json:"fairways_possible,omitempty"`
	GIR              *int     `json:"gir,omitempty"`
}

// HandicapPoint is a dated handicap index.
type HandicapPoint struct {
	Date     Date    `json:"date"`
	Handicap float64 `json:"handicap"`
}
