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

package apis

import (
	"time"

	"ultrasuite.dev/ultraerr/policy"
)

// Envelope is the minimal JSON error body returned to API/AJAX consumers.
//
// This is *not* the internal error type, just the shape we are comfortable
// exposing over the wire. Context, stack traces, causes and developer
// messages are never part of it.
type Envelope struct {
	// Status is the HTTP status the envelope is written with. It travels in
	// the response status line, not the body.
	Status int `json:"-"`

	// Error is the canonical symbolic error code, e.g. "VIRUS_FOUND".
	Error string `json:"error"`

	// Message is the resolved, user-safe message.
	Message string `json:"message"`

	// Blocking tells the client how hard the failure is.
	Blocking policy.Blocking `json:"blocking"`

	// DisplayMode tells the client how to present the failure.
	DisplayMode policy.DisplayMode `json:"display_mode"`
}

// Event is the payload published on the client event bus (the `ultraError`
// custom event and its siblings). No stack trace is ever included: the
// payload is sized and scrubbed for telemetry beacons.
type Event struct {
	// Name is the event channel, e.g. EventError. It is addressing
	// information for subscribers, not part of the serialized detail.
	Name string `json:"-"`

	// ID uniquely identifies this occurrence (UUID).
	ID string `json:"id"`

	ErrorCode   string             `json:"errorCode"`
	Message     string             `json:"message"`
	Blocking    policy.Blocking    `json:"blocking"`
	DisplayMode policy.DisplayMode `json:"displayMode,omitempty"`

	// Context is the caller-supplied diagnostic payload (strings, numbers
	// and booleans only by contract).
	Context map[string]any `json:"context,omitempty"`

	// Original describes the caught exception that triggered the report,
	// when there was one. Name and message only.
	Original *OriginalError `json:"originalError,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// OriginalError is the safe subset of a caught exception carried in an Event.
type OriginalError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
