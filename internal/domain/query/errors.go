package query

import "errors"

// Sentinel kinds for query errors. Each maps to a distinct caller outcome:
// bad metric and bad limit are rejected requests, unknown state is not found.
var (
	ErrBadMetric    = errors.New("unknown metric")
	ErrInvalidLimit = errors.New("invalid top limit")
	ErrUnknownState = errors.New("unknown state")
)
