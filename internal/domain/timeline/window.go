package timeline

import (
	"fmt"

	"github.com/okian/fairway/internal/domain/scoring"
)

// Window geometry limits. A timeline never holds more than MaxWindows windows.
const (
	MinWindowDays = 7
	MinStepDays   = 7
	MaxWindows    = 500
)

// Window is a half-open range of days [Start, End).
type Window struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start.Time) && d.Before(w.End.Time)
}

// Windows lays sliding windows of size days, step days apart, over [first, last]. The
// first window opens a third of a window before first so early data gets a full period,
// and a final window ending the day after last is added when the sliding ones leave
// the most recent data uncovered. Spans needing more than MaxWindows windows are rejected.
func Windows(first, last Date, size, step int) ([]Window, error) {
	if size < MinWindowDays || step < MinStepDays {
		return nil, fmt.Errorf("window %d step %d below %d/%d days: %w",
			size, step, MinWindowDays, MinStepDays, ErrInvalidWindow)
	}
	var out []Window
	limit := last.AddDays(size / 2)
	for start := first.AddDays(-size / 3); !start.AddDays(size).After(limit.Time); start = start.AddDays(step) {
		if len(out) == MaxWindows {
			return nil, fmt.Errorf("%s to %s needs more than %d windows of %d days every %d: %w",
				first, last, MaxWindows, size, step, ErrInvalidWindow)
		}
		out = append(out, Window{Start: start, End: start.AddDays(size)})
	}

	lastEnd := last.AddDays(1)
	if len(out) == 0 || out[len(out)-1].End.Before(lastEnd.AddDays(-step/2).Time) {
		out = append(out, Window{Start: lastEnd.AddDays(-size), End: lastEnd})
	}
	if len(out) > MaxWindows {
		return nil, fmt.Errorf("%s to %s needs more than %d windows: %w", first, last, MaxWindows, ErrInvalidWindow)
	}
	return out, nil
}

// periodConfidence grades how much data a window holds.
func periodConfidence(shots, rounds int) scoring.Confidence {
	switch {
	case shots >= 20 && rounds >= 8:
		return scoring.ConfidenceHigh
	case shots >= 10 || rounds >= 4:
		return scoring.ConfidenceMedium
	case shots >= 1 || rounds >= 1:
		return scoring.ConfidenceLow
	}
	return scoring.ConfidenceNone
}
