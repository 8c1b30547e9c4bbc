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

// Package simulate lets non-production deployments flip process-wide
// testing conditions so that specific error paths can be exercised
// deterministically. Outside an allowed environment every query answers
// false, so a forgotten condition can never fire in production.
package simulate

import (
	"sort"
	"strings"
	"sync"

	"ultrasuite.dev/ultraerr/errcode"
)

// Manager holds the active testing conditions for one process.
type Manager struct {
	env     string
	allowed map[string]struct{}

	mu         sync.RWMutex
	conditions map[errcode.Code]bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithAllowedEnvironments replaces the environment allowlist.
func WithAllowedEnvironments(envs ...string) Option {
	return func(m *Manager) {
		m.allowed = make(map[string]struct{}, len(envs))
		for _, e := range envs {
			m.allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
		}
	}
}

// New returns a Manager for the given deployment environment. By default
// conditions are honored in local, development, testing and staging.
func New(env string, opts ...Option) *Manager {
	m := &Manager{
		env:        strings.ToLower(strings.TrimSpace(env)),
		conditions: make(map[errcode.Code]bool),
	}
	WithAllowedEnvironments("local", "development", "testing", "staging")(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Environment returns the environment the manager was built for.
func (m *Manager) Environment() string { return m.env }

// Enabled reports whether this environment honors testing conditions.
func (m *Manager) Enabled() bool {
	_, ok := m.allowed[m.env]
	return ok
}

// Set switches the condition for code c on or off.
func (m *Manager) Set(c errcode.Code, active bool) {
	c = errcode.Normalize(string(c))
	m.mu.Lock()
	if active {
		m.conditions[c] = true
	} else {
		delete(m.conditions, c)
	}
	m.mu.Unlock()
}

// IsTesting reports whether the condition for c is active. It is always
// false outside an allowed environment, whatever was Set.
func (m *Manager) IsTesting(c errcode.Code) bool {
	if !m.Enabled() {
		return false
	}
	c = errcode.Normalize(string(c))
	m.mu.RLock()
	active := m.conditions[c]
	m.mu.RUnlock()
	return active
}

// Reset clears every active condition.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.conditions = make(map[errcode.Code]bool)
	m.mu.Unlock()
}

// Active returns the active condition codes, sorted.
func (m *Manager) Active() []errcode.Code {
	m.mu.RLock()
	out := make([]errcode.Code, 0, len(m.conditions))
	for c := range m.conditions {
		out = append(out, c)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
