package htmlshot

import (
	"errors"
	"fmt"

	"github.com/go-rod/htmlshot/lib/cdp"
	"github.com/go-rod/htmlshot/lib/proto"
)

// ErrTimeout is matched by every error caused by an expired wait, such as a command
// without reply, a selector that never matches, or a page that never loads.
var ErrTimeout = cdp.ErrTimeout

// ErrElementNotFound error
var ErrElementNotFound = errors.New("cannot find element")

// ErrStaleElement is returned when an element is used after the document that produced it changed
var ErrStaleElement = errors.New("element is stale, the document has changed")

// ErrTabClosed is returned by a wait on a tab that has been closed
var ErrTabClosed = errors.New("tab closed")

// EvalError is a script exception thrown in the page
type EvalError struct {
	Description string
	Line        int
	Column      int
}

// Error interface
func (e *EvalError) Error() string {
	return fmt.Sprintf("eval error at %d:%d: %s", e.Line, e.Column, e.Description)
}

func newEvalError(d *proto.RuntimeExceptionDetails) *EvalError {
	desc := d.Text
	if d.Exception != nil && d.Exception.Description != "" {
		desc = d.Exception.Description
	}
	return &EvalError{Description: desc, Line: d.LineNumber, Column: d.ColumnNumber}
}

// CaptureError is returned when the browser rejects a screenshot, such as an invalid clip
type CaptureError struct {
	Err error
}

// Error interface
func (e *CaptureError) Error() string {
	return "capture failed: " + e.Err.Error()
}

// Unwrap interface
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// timeoutErr wraps a context error of an expired wait so that it matches ErrTimeout
type timeoutErr struct {
	what  string
	cause error
}

func (e *timeoutErr) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTimeout.Error(), e.what, e.cause)
}

func (e *timeoutErr) Is(target error) bool {
	return target == ErrTimeout
}

func (e *timeoutErr) Unwrap() error {
	return e.cause
}

// isStale reports whether a remote error means the node is gone
func isStale(err error) bool {
	return errors.Is(err, cdp.ErrNodeNotFound) ||
		errors.Is(err, cdp.ErrObjNotFound) ||
		errors.Is(err, cdp.ErrNoNodeForBackendID)
}
