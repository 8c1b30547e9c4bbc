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
	"errors"
	"fmt"
	"sort"
	"sync"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

// Registry is the frozen policy store plus a mutable runtime overlay.
//
// The static tables (built-ins merged with construction options) are
// immutable after New returns. Define writes to a separate overlay map
// that Lookup consults first.
type Registry struct {
	static   map[errcode.Code]apis.Config
	types    map[policy.Severity]apis.TypeDefaults
	blocking map[policy.Blocking]apis.BlockingDefaults

	mu      sync.RWMutex
	defined map[errcode.Code]apis.Config
}

// New builds a Registry from the built-in catalog and the given options.
// It fails if any option carried an invalid code or config.
func New(opts ...Option) (*Registry, error) {
	b := newBuilder()
	for k, v := range builtinTypes() {
		b.types[k] = v
	}
	for k, v := range builtinBlocking() {
		b.blocking[k] = v
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.builtins {
		for c, cfg := range builtinErrors() {
			if _, ok := b.errors[c]; !ok {
				b.errors[c] = cfg
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("registry: invalid options: %w", errors.Join(b.errs...))
	}
	return &Registry{
		static:   b.errors,
		types:    b.types,
		blocking: b.blocking,
		defined:  make(map[errcode.Code]apis.Config),
	}, nil
}

// Define installs or replaces a runtime config for code c. Runtime configs
// take priority over the static table during Lookup.
func (r *Registry) Define(c errcode.Code, cfg apis.Config) error {
	c = errcode.Normalize(string(c))
	if err := c.Validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("registry: define %s: %w", c, err)
	}
	r.mu.Lock()
	r.defined[c] = cfg
	r.mu.Unlock()
	return nil
}

// Defined returns the runtime config for c, if one was installed.
func (r *Registry) Defined(c errcode.Code) (apis.Config, bool) {
	r.mu.RLock()
	cfg, ok := r.defined[c]
	r.mu.RUnlock()
	return cfg, ok
}

// Static returns the construction-time config for c, if present.
func (r *Registry) Static(c errcode.Code) (apis.Config, bool) {
	cfg, ok := r.static[c]
	return cfg, ok
}

// Lookup returns the config for c, preferring the runtime overlay.
func (r *Registry) Lookup(c errcode.Code) (apis.Config, bool) {
	if cfg, ok := r.Defined(c); ok {
		return cfg, true
	}
	return r.Static(c)
}

// Has reports whether c is known, in either table.
func (r *Registry) Has(c errcode.Code) bool {
	_, ok := r.Lookup(c)
	return ok
}

// TypeDefaults returns the defaults table entry for severity s.
func (r *Registry) TypeDefaults(s policy.Severity) (apis.TypeDefaults, bool) {
	d, ok := r.types[s]
	return d, ok
}

// BlockingDefaults returns the defaults table entry for blocking level bl.
func (r *Registry) BlockingDefaults(bl policy.Blocking) (apis.BlockingDefaults, bool) {
	d, ok := r.blocking[bl]
	return d, ok
}

// Known returns every known code, sorted.
func (r *Registry) Known() []errcode.Code {
	r.mu.RLock()
	out := make([]errcode.Code, 0, len(r.static)+len(r.defined))
	seen := make(map[errcode.Code]struct{}, len(r.static)+len(r.defined))
	for c := range r.defined {
		out = append(out, c)
		seen[c] = struct{}{}
	}
	r.mu.RUnlock()
	for c := range r.static {
		if _, ok := seen[c]; !ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KnownByType returns every known code whose config severity is s, sorted.
func (r *Registry) KnownByType(s policy.Severity) []errcode.Code {
	var out []errcode.Code
	for _, c := range r.Known() {
		if cfg, ok := r.Lookup(c); ok && cfg.Type == s {
			out = append(out, c)
		}
	}
	return out
}

// Export returns a snapshot of every known config keyed by code string,
// with the runtime overlay winning on conflicts. The result is safe to
// serialize and hand to clients.
func (r *Registry) Export() map[string]apis.Config {
	out := make(map[string]apis.Config, len(r.static))
	for c, cfg := range r.static {
		out[string(c)] = cfg
	}
	r.mu.RLock()
	for c, cfg := range r.defined {
		out[string(c)] = cfg
	}
	r.mu.RUnlock()
	return out
}

// Materialize fills a config's zero-valued fields from the defaults tables
// so downstream consumers never see an incomplete policy. Severity defaults
// to error, blocking to not, display mode to div; the HTTP status comes
// from the severity's type defaults, or 500 when the table has no entry.
func (r *Registry) Materialize(cfg apis.Config) apis.Config {
	if cfg.Type == "" {
		cfg.Type = policy.SeverityError
	}
	if cfg.Blocking == "" {
		cfg.Blocking = policy.BlockingNone
	}
	if cfg.DisplayMode == "" {
		cfg.DisplayMode = policy.DisplayDiv
	}
	if cfg.HTTPStatus == 0 {
		if d, ok := r.types[cfg.Type]; ok && d.HTTPStatus != 0 {
			cfg.HTTPStatus = d.HTTPStatus
		} else {
			cfg.HTTPStatus = 500
		}
	}
	return cfg
}
