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
	"context"

	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

// Report bundles everything the dispatcher hands to each handler for one
// resolved error: the code as reported by the caller, its resolved config,
// the formatted user message, the (possibly fallback-augmented) context, and
// the caught exception when one exists.
//
// Handlers must treat all fields as read-only; the dispatcher shares one
// Report across the whole handler chain.
type Report struct {
	Code    errcode.Code
	Config  Config
	Message string
	Context map[string]any
	Cause   error
}

// Handler is a pluggable unit reacting to a resolved error: log it, notify
// the team, display it, persist it.
//
// Registration order is significant and preserved by the dispatcher.
// Handlers are externally owned; the dispatcher holds non-owning references.
//
// Name must be stable and unique among registered handlers: it identifies the
// handler in failure logs and deduplicates double registration. This is an
// explicit capability rather than runtime type introspection.
type Handler interface {
	Name() string

	// ShouldHandle reports whether this handler applies to an error with the
	// given resolved config. It must be cheap and side-effect free.
	ShouldHandle(cfg Config) bool

	// Handle reacts to the error. A returned error (or panic) is isolated by
	// the dispatcher: it is logged against Name() and the remaining handlers
	// still run.
	Handle(ctx context.Context, rep Report) error
}

// Translator resolves a translation key to a localized string. The second
// return value reports whether the key is known; the formatter falls through
// its source chain on false.
//
// Translation storage and authoring are out of scope; this is the boundary
// the pipeline consumes.
type Translator interface {
	Get(key string) (string, bool)
}

// Requester exposes the minimal request introspection the response builder
// needs to pick a transport shape, plus the metadata used for context
// enrichment. HTTP frameworks adapt their request type to this.
type Requester interface {
	// ExpectsJSON reports whether the caller negotiated a JSON response
	// (Accept header, XHR marker).
	ExpectsJSON() bool

	// Is reports whether the request path matches a route pattern such as
	// "api/*". Pattern segments are '/'-separated; "*" matches one segment,
	// a trailing "*" matches the rest of the path.
	Is(pattern string) bool

	Method() string
	Path() string
	IP() string
	UserID() string
}

// Flasher stores a user-facing message in per-session state so the next HTML
// render can show it, and can tear the session down for hard failures.
type Flasher interface {
	Flash(message string, cfg Config) error
	Clear() error
}

// NotificationSink presents an error event on one display surface (modal,
// toast, inline element, log). The client mirror routes by Mode; the core
// never knows which UI library sits behind a sink.
type NotificationSink interface {
	Mode() policy.DisplayMode
	Show(ctx context.Context, ev Event) error
}
