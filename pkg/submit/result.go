package submit

import (
	"errors"
	"fmt"
)

// UnknownErrorMessage is reported when a failure carries neither a structured
// message nor a status text.
const UnknownErrorMessage = "Unknown error"

// ErrAborted is returned by Attempt.Wait when validation stopped the attempt
// before any request was issued.
var ErrAborted = errors.New("submit: aborted by validation")

// TransportError describes a failed request: the server answered with a
// non-2xx status or the request never completed.
type TransportError struct {
	// Message is the user-facing text resolved from the error payload, the
	// status text, or UnknownErrorMessage, in that order.
	Message    string
	Status     int
	StatusText string
	Body       any
	Cause      error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("submit: status %d: %s", e.Status, e.Message)
	}
	return "submit: " + e.Message
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Result is the outcome of one submission. Exactly one of Response and Err is
// populated; the zero Result is not a valid outcome and reports Resolved false.
type Result struct {
	response any
	err      *TransportError
	resolved bool
}

// Succeeded builds a successful result.
func Succeeded(response any) Result {
	return Result{response: response, resolved: true}
}

// Failed builds a failed result. A nil err is replaced by a TransportError
// carrying UnknownErrorMessage.
func Failed(err *TransportError) Result {
	if err == nil {
		err = &TransportError{Message: UnknownErrorMessage}
	}
	if err.Message == "" {
		err.Message = UnknownErrorMessage
	}
	return Result{err: err, resolved: true}
}

// Resolved reports whether the result was produced by Succeeded or Failed.
func (r Result) Resolved() bool {
	return r.resolved
}

// OK reports success.
func (r Result) OK() bool {
	return r.resolved && r.err == nil
}

// Response returns the decoded response payload of a successful result.
func (r Result) Response() (any, bool) {
	if !r.OK() {
		return nil, false
	}
	return r.response, true
}

// Err returns the failure, or nil on success.
func (r Result) Err() *TransportError {
	return r.err
}

// Message returns the failure message, or "" on success.
func (r Result) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message
}

// Callback receives the result of a submission exactly once. It is not called
// when validation aborts the attempt.
type Callback func(Result)
