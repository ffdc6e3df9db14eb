package source

import "errors"

// Sentinel kinds for loader errors.
var (
	// ErrSourceNotFound signals a missing, unreadable, or empty source file.
	ErrSourceNotFound = errors.New("data source not found")
	// ErrMalformedSource signals a file that exists but cannot be parsed.
	ErrMalformedSource = errors.New("malformed data source")
)
