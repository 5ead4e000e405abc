package loadgen

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	DrainPollInterval    = 100 * time.Millisecond
	PercentageMultiplier = 100
	maxThrottleRetries   = 5
	throttleBackoff      = 50 * time.Millisecond
)
