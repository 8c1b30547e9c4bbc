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

package registry

import (
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

// Option configures a Registry during construction.
type Option func(*builder)

// WithError registers a static config for code c. Later options win over
// earlier ones and over the built-in catalog.
func WithError(c errcode.Code, cfg apis.Config) Option {
	return func(b *builder) {
		b.addError(errcode.Normalize(string(c)), cfg)
	}
}

// WithErrors registers a batch of static configs keyed by raw code strings,
// as read from a config file. Keys are normalized before validation.
func WithErrors(m map[string]apis.Config) Option {
	return func(b *builder) {
		for raw, cfg := range m {
			b.addError(errcode.Normalize(raw), cfg)
		}
	}
}

// WithTypeDefaults sets the defaults applied to configs of severity s.
func WithTypeDefaults(s policy.Severity, d apis.TypeDefaults) Option {
	return func(b *builder) {
		if !s.Valid() {
			b.errs = append(b.errs, policy.ErrUnknownSeverity)
			return
		}
		b.types[s] = d
	}
}

// WithBlockingDefaults sets the defaults applied to configs with blocking
// level bl.
func WithBlockingDefaults(bl policy.Blocking, d apis.BlockingDefaults) Option {
	return func(b *builder) {
		if !bl.Valid() {
			b.errs = append(b.errs, policy.ErrUnknownBlocking)
			return
		}
		b.blocking[bl] = d
	}
}

// WithoutBuiltins skips the built-in error catalog. Severity and blocking
// defaults are still seeded so Materialize always has a table to consult.
func WithoutBuiltins() Option {
	return func(b *builder) {
		b.builtins = false
	}
}
