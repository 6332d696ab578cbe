package store

import "fmt"

// Result is the outcome of a store operation. Expected failures (missing
// object, unknown branch, nothing to commit) are reported here instead of
// through an error.
type Result struct {
	message string
	success bool
	payload any
}

func succeed(payload any, format string, args ...any) Result {
	return Result{message: fmt.Sprintf(format, args...), success: true, payload: payload}
}

func fail(format string, args ...any) Result {
	return Result{message: fmt.Sprintf(format, args...)}
}

// Message returns the human-readable outcome.
func (r Result) Message() string { return r.message }

// Success reports whether the operation applied its effect.
func (r Result) Success() bool { return r.success }

// Failed is the inverse of Success.
func (r Result) Failed() bool { return !r.success }

// Payload returns the value attached to a successful result, or nil.
// Callers must check Success before trusting it.
func (r Result) Payload() any { return r.payload }

func (r Result) String() string {
	if r.success {
		return "ok: " + r.message
	}
	return "failed: " + r.message
}
