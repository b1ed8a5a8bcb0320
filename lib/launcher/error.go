package launcher

import (
	"errors"
	"fmt"
)

// ErrAlreadyLaunched is an error that indicates the launcher has already been launched.
var ErrAlreadyLaunched = errors.New("already launched")

// ErrExecutableNotFound is returned when no browser executable can be found
var ErrExecutableNotFound = errors.New("browser executable not found, set it via Launcher.Bin or the CHROME env")

// ErrLaunchTimeout is returned when the debugging endpoint doesn't answer within the start timeout
var ErrLaunchTimeout = errors.New("timeout waiting for the browser debugging endpoint")

// ProcessExitedError is returned when the browser exits before its debugging endpoint is ready
type ProcessExitedError struct {
	Code   int
	Output string
}

// Error interface
func (e *ProcessExitedError) Error() string {
	return fmt.Sprintf("browser exited with code %d before it was ready: %s", e.Code, e.Output)
}

// CleanupError is reported when the user data dir can't be removed.
// It never blocks the shutdown.
type CleanupError struct {
	Dir string
	Err error
}

// Error interface
func (e *CleanupError) Error() string {
	return fmt.Sprintf("failed to remove user data dir %s: %v", e.Dir, e.Err)
}

// Unwrap interface
func (e *CleanupError) Unwrap() error {
	return e.Err
}
