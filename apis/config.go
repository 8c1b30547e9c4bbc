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
	"fmt"

	"ultrasuite.dev/ultraerr/policy"
)

// Config is the immutable policy record resolved for one error code.
//
// A Config decides everything a call site does not know in advance: how
// severe the failure is, whether it blocks the request, which HTTP status and
// display mode it maps to, and where its user-facing message comes from.
//
// The message source is exactly one of three optional fields, consulted in
// the formatter's fixed order: UserMessageKey (translation key), UserMessage
// (literal), DevMessage (developer-facing last resort). All three may be
// empty; the formatter's generic fallback guarantees a non-empty message
// regardless.
type Config struct {
	// Type classifies the severity of the error.
	Type policy.Severity `json:"type" mapstructure:"type"`

	// Blocking classifies how the error affects the current request.
	Blocking policy.Blocking `json:"blocking" mapstructure:"blocking"`

	// HTTPStatus is the HTTP status for transport responses. Zero means
	// "not specified": the per-severity default applies.
	HTTPStatus int `json:"http_status_code,omitempty" mapstructure:"http_status_code"`

	// DisplayMode selects how a client surface presents the error.
	DisplayMode policy.DisplayMode `json:"display_mode" mapstructure:"display_mode"`

	// UserMessage is an optional literal user-facing message.
	UserMessage string `json:"user_message,omitempty" mapstructure:"user_message"`

	// UserMessageKey is an optional translation key for the user-facing
	// message. It wins over UserMessage when both are present.
	UserMessageKey string `json:"user_message_key,omitempty" mapstructure:"user_message_key"`

	// DevMessage is developer-facing text. It is never shown to end users
	// unless dev messages are explicitly enabled on the formatter, and even
	// then only as a last resort with a warning logged.
	DevMessage string `json:"dev_message,omitempty" mapstructure:"dev_message"`
}

// Validate checks that every populated classification field holds a defined
// value and that the HTTP status, when present, is a plausible status code.
// Zero-value fields are allowed; the registry fills them with defaults when
// the config is materialized.
func (c Config) Validate() error {
	if c.Type != "" && !c.Type.Valid() {
		return fmt.Errorf("%w: %q", policy.ErrUnknownSeverity, c.Type)
	}
	if c.Blocking != "" && !c.Blocking.Valid() {
		return fmt.Errorf("%w: %q", policy.ErrUnknownBlocking, c.Blocking)
	}
	if c.DisplayMode != "" && !c.DisplayMode.Valid() {
		return fmt.Errorf("%w: %q", policy.ErrUnknownDisplayMode, c.DisplayMode)
	}
	if c.HTTPStatus != 0 && (c.HTTPStatus < 100 || c.HTTPStatus > 599) {
		return fmt.Errorf("ultraerr: http status %d out of range", c.HTTPStatus)
	}
	return nil
}

// TypeDefaults holds the per-severity behavioural defaults, applied when a
// Config omits a field.
type TypeDefaults struct {
	// LogLevel names the log level errors of this severity are recorded at.
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// NotifyTeam reports whether errors of this severity page the
	// development team (mail notification handler).
	NotifyTeam bool `json:"notify_team" mapstructure:"notify_team"`

	// HTTPStatus is the transport status used when the per-code config does
	// not specify one.
	HTTPStatus int `json:"http_status" mapstructure:"http_status"`
}

// BlockingDefaults holds the per-blocking-level behavioural defaults.
type BlockingDefaults struct {
	// TerminateRequest reports whether the current request must stop.
	TerminateRequest bool `json:"terminate_request" mapstructure:"terminate_request"`

	// FlashSession reports whether the user message is flashed to session
	// state for the next page render.
	FlashSession bool `json:"flash_session" mapstructure:"flash_session"`

	// ClearSession reports whether the session is torn down entirely
	// (used by hard-blocking auth failures).
	ClearSession bool `json:"clear_session" mapstructure:"clear_session"`
}

// ConfigPayload is the wire shape of the config fetch endpoint, consumed by
// the client mirror's loader. Keys of Errors are canonical code strings; keys
// of Types and BlockingLevels are the enum string values.
type ConfigPayload struct {
	Errors         map[string]Config           `json:"errors"`
	Types          map[string]TypeDefaults     `json:"types"`
	BlockingLevels map[string]BlockingDefaults `json:"blocking_levels"`
}
