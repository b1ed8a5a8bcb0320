package cdp

import (
	"errors"
	"fmt"
)

// ErrConnClosed is returned by every call that can't be answered because the transport is gone.
var ErrConnClosed = errors.New("cdp connection closed")

// ErrTimeout is matched by the error of a call that didn't get its reply in time.
var ErrTimeout = errors.New("cdp call timeout")

// Error of the Response
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

// Error stdlib interface
func (e *Error) Error() string {
	if e.Data == "" {
		return fmt.Sprintf("{%d %s}", e.Code, e.Message)
	}
	return fmt.Sprintf("{%d %s %s}", e.Code, e.Message, e.Data)
}

// Is matches the code and the message
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// ErrCtxNotFound type
var ErrCtxNotFound = &Error{
	Code:    -32000,
	Message: "Cannot find context with specified id",
}

// ErrCtxDestroyed type
var ErrCtxDestroyed = &Error{
	Code:    -32000,
	Message: "Execution context was destroyed.",
}

// ErrObjNotFound type
var ErrObjNotFound = &Error{
	Code:    -32000,
	Message: "Could not find object with given id",
}

// ErrNodeNotFound type
var ErrNodeNotFound = &Error{
	Code:    -32000,
	Message: "No node with given id found",
}

// ErrNoNodeForBackendID type
var ErrNoNodeForBackendID = &Error{
	Code:    -32000,
	Message: "No node found for given backend id",
}

// ErrSessionNotFound type
var ErrSessionNotFound = &Error{
	Code:    -32001,
	Message: "Session with given id not found.",
}

// ConnectError is returned when the websocket handshake fails
type ConnectError struct {
	URL string
	Err error
}

// Error interface
func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

// Unwrap interface
func (e *ConnectError) Unwrap() error {
	return e.Err
}

type timeoutError struct {
	method string
	cause  error
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTimeout.Error(), e.method, e.cause)
}

func (e *timeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *timeoutError) Unwrap() error {
	return e.cause
}

func connClosed(cause error) error {
	if cause == nil {
		return ErrConnClosed
	}
	return fmt.Errorf("%w: %v", ErrConnClosed, cause)
}
