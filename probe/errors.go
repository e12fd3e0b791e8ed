package probe

import "errors"

var (
	// ErrAttemptTimeout indicates a probe attempt exceeded its timeout.
	// Treated identically to an ordinary probe failure by the watcher.
	ErrAttemptTimeout = errors.New("probe: attempt timeout")

	// ErrEmptyCommand indicates an Exec method with no program.
	ErrEmptyCommand = errors.New("probe: exec command is empty")

	// ErrMissingURL indicates an HTTPGet method without a URL.
	ErrMissingURL = errors.New("probe: http_get url is missing")
)
