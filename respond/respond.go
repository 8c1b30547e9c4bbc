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

// Package respond decides how a handled error reaches the caller: as a
// JSON envelope for API traffic, as a thrown exception that terminates
// the request, or as a session flash that lets the request continue.
package respond

import (
	"github.com/sirupsen/logrus"

	ultraerr "ultrasuite.dev/ultraerr"
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

// DefaultAPIPattern matches request paths that are served JSON envelopes
// even without an Accept header asking for them.
const DefaultAPIPattern = "api/*"

// Builder turns resolved errors into transport decisions.
type Builder struct {
	log              logrus.FieldLogger
	apiPattern       string
	blockingDefaults func(policy.Blocking) (apis.BlockingDefaults, bool)
}

// Option configures a Builder.
type Option func(*Builder)

// WithAPIPattern overrides the path pattern treated as API traffic.
func WithAPIPattern(pattern string) Option {
	return func(b *Builder) { b.apiPattern = pattern }
}

// WithBlockingDefaults installs the blocking-level defaults lookup,
// normally Registry.BlockingDefaults. Without it the builder falls back
// to the blocking level alone.
func WithBlockingDefaults(fn func(policy.Blocking) (apis.BlockingDefaults, bool)) Option {
	return func(b *Builder) { b.blockingDefaults = fn }
}

// New returns a Builder. log must not be nil.
func New(log logrus.FieldLogger, opts ...Option) *Builder {
	b := &Builder{log: log, apiPattern: DefaultAPIPattern}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Input is one resolved, formatted error awaiting a transport decision.
type Input struct {
	Code       errcode.Code
	Config     apis.Config
	Context    map[string]any
	Message    string
	Cause      error
	ForceThrow bool
}

// Build applies the decision table:
//
//   - ForceThrow always produces an exception, regardless of transport.
//   - JSON traffic (the requester expects JSON, or the path matches the
//     API pattern) gets an envelope; the caller writes it and continues.
//   - Fully-blocking errors, and any error with no requester to flash
//     through, produce an exception that terminates the request.
//   - Everything else is flashed into the session and the request
//     continues; flash failures are logged, never surfaced.
//
// Exactly one of the envelope and the error is non-nil, except for the
// flash outcome where both are nil.
func (b *Builder) Build(req apis.Requester, fl apis.Flasher, in Input) (*apis.Envelope, error) {
	if in.ForceThrow {
		decisionsTotal.WithLabelValues("throw").Inc()
		return nil, b.exception(in)
	}

	if req != nil && (req.ExpectsJSON() || req.Is(b.apiPattern)) {
		decisionsTotal.WithLabelValues("json").Inc()
		return &apis.Envelope{
			Status:      in.Config.HTTPStatus,
			Error:       string(in.Code),
			Message:     in.Message,
			Blocking:    in.Config.Blocking,
			DisplayMode: in.Config.DisplayMode,
		}, nil
	}

	if in.Config.Blocking == policy.BlockingFull || req == nil || fl == nil {
		decisionsTotal.WithLabelValues("throw").Inc()
		return nil, b.exception(in)
	}

	decisionsTotal.WithLabelValues("flash").Inc()
	if err := fl.Flash(in.Message, in.Config); err != nil {
		b.log.WithFields(logrus.Fields{
			"error_code": string(in.Code),
		}).WithError(err).Warn("flashing error message to session failed")
	}
	if b.clearSession(in.Config.Blocking) {
		if err := fl.Clear(); err != nil {
			b.log.WithError(err).Warn("clearing session failed")
		}
	}
	return nil, nil
}

func (b *Builder) exception(in Input) error {
	e := ultraerr.E(in.Code, in.Config.HTTPStatus, in.Message,
		ultraerr.WithContextMapOption(in.Context),
		ultraerr.WithCauseOption(in.Cause),
	)
	return e
}

func (b *Builder) clearSession(bl policy.Blocking) bool {
	if b.blockingDefaults == nil {
		return false
	}
	d, ok := b.blockingDefaults(bl)
	return ok && d.ClearSession
}
