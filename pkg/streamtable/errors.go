// ABOUTME: Sentinel errors for table construction and lifecycle
// ABOUTME: Callers match them with errors.Is; details are wrapped with %w

package streamtable

import "errors"

var (
	// ErrInvalidConfig wraps every construction-time validation failure.
	ErrInvalidConfig = errors.New("streamtable: invalid config")

	// ErrNotStarted is returned by Stop on a table that was never started.
	ErrNotStarted = errors.New("streamtable: not started")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("streamtable: already started")
)
