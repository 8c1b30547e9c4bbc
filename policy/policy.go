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

package policy

import (
	"errors"
	"strings"
)

// Severity classifies how serious an error is. It drives default logging and
// team-notification behaviour, independently of whether the error blocks the
// current request (see Blocking).
type Severity string

const (
	// SeverityCritical marks failures that require operator attention:
	// data-loss risks, broken invariants, unusable subsystems.
	SeverityCritical Severity = "critical"

	// SeverityError marks ordinary failures of an operation.
	SeverityError Severity = "error"

	// SeverityWarning marks degraded-but-recoverable conditions.
	SeverityWarning Severity = "warning"

	// SeverityNotice marks informational conditions that are reported through
	// the same pipeline for uniformity but need no follow-up.
	SeverityNotice Severity = "notice"
)

// Blocking classifies how an error affects the current request or flow.
// It drives the response shape, independently of Severity.
type Blocking string

const (
	// BlockingFull halts the current request; HTML consumers get an error
	// page, programmatic consumers get an exception.
	BlockingFull Blocking = "blocking"

	// BlockingSemi lets the request continue but flags the failure to the
	// user (flashed message, toast).
	BlockingSemi Blocking = "semi-blocking"

	// BlockingNone is purely informational.
	BlockingNone Blocking = "not"
)

// DisplayMode selects how a client surface should present the error to the
// user. The core never renders anything itself; it only routes to whichever
// notification sink is configured for the mode.
type DisplayMode string

const (
	DisplaySweetAlert DisplayMode = "sweet-alert"
	DisplayToast      DisplayMode = "toast"
	DisplayDiv        DisplayMode = "div"
	DisplayLogOnly    DisplayMode = "log-only"
)

var (
	// ErrUnknownSeverity is returned when a value is not one of the four
	// defined severities.
	ErrUnknownSeverity = errors.New("ultraerr: unknown severity")
	// ErrUnknownBlocking is returned when a value is not one of the three
	// defined blocking levels.
	ErrUnknownBlocking = errors.New("ultraerr: unknown blocking level")
	// ErrUnknownDisplayMode is returned when a value is not one of the four
	// defined display modes.
	ErrUnknownDisplayMode = errors.New("ultraerr: unknown display mode")
)

// Severities lists all defined severities in descending seriousness.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityNotice}
}

// BlockingLevels lists all defined blocking levels, hardest first.
func BlockingLevels() []Blocking {
	return []Blocking{BlockingFull, BlockingSemi, BlockingNone}
}

// DisplayModes lists all defined display modes.
func DisplayModes() []DisplayMode {
	return []DisplayMode{DisplaySweetAlert, DisplayToast, DisplayDiv, DisplayLogOnly}
}

// ParseSeverity normalizes and validates a severity string.
func ParseSeverity(s string) (Severity, error) {
	v := Severity(normalize(s))
	if !v.Valid() {
		return "", ErrUnknownSeverity
	}
	return v, nil
}

// ParseBlocking normalizes and validates a blocking-level string.
func ParseBlocking(s string) (Blocking, error) {
	v := Blocking(normalize(s))
	if !v.Valid() {
		return "", ErrUnknownBlocking
	}
	return v, nil
}

// ParseDisplayMode normalizes and validates a display-mode string.
func ParseDisplayMode(s string) (DisplayMode, error) {
	v := DisplayMode(normalize(s))
	if !v.Valid() {
		return "", ErrUnknownDisplayMode
	}
	return v, nil
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityError, SeverityWarning, SeverityNotice:
		return true
	}
	return false
}

// Valid reports whether b is one of the defined blocking levels.
func (b Blocking) Valid() bool {
	switch b {
	case BlockingFull, BlockingSemi, BlockingNone:
		return true
	}
	return false
}

// Valid reports whether d is one of the defined display modes.
func (d DisplayMode) Valid() bool {
	switch d {
	case DisplaySweetAlert, DisplayToast, DisplayDiv, DisplayLogOnly:
		return true
	}
	return false
}

func (s Severity) String() string    { return string(s) }
func (b Blocking) String() string    { return string(b) }
func (d DisplayMode) String() string { return string(d) }

// normalize lowercases and trims; enum values keep their dashes
// ("semi-blocking", "sweet-alert"), so unlike error codes no character
// replacement is applied.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
