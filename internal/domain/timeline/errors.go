package timeline

import "errors"

var (
	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidWindow is returned for window or step sizes below the minimum and for
	// spans that need too many windows.
	ErrInvalidWindow = errors.New("invalid window")
)
