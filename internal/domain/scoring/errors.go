package scoring

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrScoreOutOfRange      = errors.New("dimension score out of range")
	ErrPercentileOutOfRange = errors.New("dimension percentile out of range")
	ErrInvalidHandicap      = errors.New("invalid handicap")
	ErrInvalidMetric        = errors.New("invalid metric value")
	ErrUnknownDimension     = errors.New("unknown dimension")
	ErrUnknownBenchmark     = errors.New("unknown benchmark")
	ErrInvalidBenchmark     = errors.New("invalid benchmark table")
)
