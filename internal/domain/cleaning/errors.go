package cleaning

import "errors"

// Sentinel kinds for cleaning errors.
var (
	// ErrEmptyDataset signals that no rows survived the pipeline. Callers
	// treat this the same as a missing data source.
	ErrEmptyDataset = errors.New("no rows survived cleaning")
)
