/*
   Copyright 2026 The UltraSuite Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ultraerr

import (
	"errors"
	"fmt"

	"ultrasuite.dev/ultraerr/errcode"
)

// Error is the carrier for blocking failures in ultraerr.
//
// It carries:
//   - Code: the symbolic error code the failure was classified as (required);
//   - HTTPStatus: the transport status resolved from the code's policy;
//   - Message: the user-facing message resolved by the formatter;
//   - Context: the diagnostic key/value payload supplied by the caller;
//   - Cause: wrapped underlying error for debugging / unwrapping.
//
// Instances are created by the response builder (and by the resolver for its
// single fatal state), never constructed ad hoc by business code: business
// code reports codes, the pipeline decides whether an Error comes back.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	// Code is the symbolic classification of the failure,
	// e.g. "VIRUS_FOUND" or "FATAL_FALLBACK_FAILURE".
	Code errcode.Code

	// HTTPStatus is the HTTP status the failure maps to. Zero means
	// "not resolved"; transport adapters treat it as 500.
	HTTPStatus int

	// Message is the resolved user-facing message. It never contains
	// developer details unless dev messages were explicitly enabled on the
	// formatter.
	Message string

	// Context is the caller-supplied diagnostic payload. Values are limited
	// to strings, numbers and booleans by contract, and must not contain
	// secrets. The map is treated as immutable: WithContextValue and
	// WithContext always copy it.
	Context map[string]any

	// Cause holds the wrapped underlying error (if any). This is used for
	// errors.Is / errors.As and for debugging in lower layers.
	Cause error
}

// E is a convenience constructor for Error.
//
// Usage:
//
//	return ultraerr.E(errcode.VirusFound, 422, "the uploaded file is infected",
//	    ultraerr.WithContextOption("file_name", "report.pdf"),
//	    ultraerr.WithCauseOption(scanErr),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func E(c errcode.Code, httpStatus int, msg string, opts ...Option) *Error {
	e := &Error{Code: c, HTTPStatus: httpStatus, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<CODE>: <message>
//
// or, when an HTTP status is resolved:
//
//	<CODE> (http <status>): <message>
//
// This makes the error both human- and machine-scannable in logs.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (http %d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// From extracts an *Error from anywhere in err's chain.
// The second return value reports whether one was found.
func From(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// CodeOf returns the symbolic code carried by err, or errcode.Empty when err
// is not (and does not wrap) an *Error.
func CodeOf(err error) errcode.Code {
	if ue, ok := From(err); ok {
		return ue.Code
	}
	return errcode.Empty
}

// WithMessage returns a shallow copy of e with a replaced user message.
// Useful when a boundary wants to keep the code and context but present the
// message in a different language.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithHTTPStatus returns a shallow copy of e with the given HTTP status set.
func (e *Error) WithHTTPStatus(status int) *Error {
	cp := *e
	cp.HTTPStatus = status
	return &cp
}

// WithContextValue returns a shallow copy of e with one extra key/value in
// Context.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across goroutines or shared error values.
func (e *Error) WithContextValue(k string, v any) *Error {
	cp := *e
	// No context yet, create a new single-entry map.
	if len(cp.Context) == 0 {
		cp.Context = map[string]any{k: v}
		return &cp
	}
	// Copy existing context and add one more.
	m := make(map[string]any, len(cp.Context)+1)
	for k0, v0 := range cp.Context {
		m[k0] = v0
	}
	m[k] = v
	cp.Context = m
	return &cp
}

// WithContext returns a shallow copy of e with all provided kv merged into
// Context.
//
// If the Error already has Context, both maps are copied and merged,
// with kv taking precedence on key conflicts.
func (e *Error) WithContext(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	// No existing context, just copy kv.
	if len(cp.Context) == 0 {
		m := make(map[string]any, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		cp.Context = m
		return &cp
	}
	// Merge existing + new.
	m := make(map[string]any, len(cp.Context)+len(kv))
	for k0, v0 := range cp.Context {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Context = m
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause
// attached. If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
