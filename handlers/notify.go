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

package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

// DefaultCooldown is the minimum interval between notifications for the
// same error code.
const DefaultCooldown = 15 * time.Minute

// Mailer delivers a notification to the team.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Notify emails the team about errors whose severity has notify_team set.
// Repeated occurrences of the same code inside the cooldown window are
// suppressed so an error storm does not become a mail storm.
type Notify struct {
	mailer   Mailer
	to       []string
	defaults func(policy.Severity) (apis.TypeDefaults, bool)
	cooldown time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastSent map[errcode.Code]time.Time
}

// NotifyOption configures the notification handler.
type NotifyOption func(*Notify)

// WithCooldown overrides the per-code throttle window. Zero disables
// throttling.
func WithCooldown(d time.Duration) NotifyOption {
	return func(n *Notify) { n.cooldown = d }
}

// WithClock injects the time source. Test hook.
func WithClock(now func() time.Time) NotifyOption {
	return func(n *Notify) { n.now = now }
}

// NewNotify returns the notification handler. defaults is the severity
// defaults lookup, normally Registry.TypeDefaults.
func NewNotify(mailer Mailer, to []string, defaults func(policy.Severity) (apis.TypeDefaults, bool), opts ...NotifyOption) *Notify {
	n := &Notify{
		mailer:   mailer,
		to:       to,
		defaults: defaults,
		cooldown: DefaultCooldown,
		now:      time.Now,
		lastSent: make(map[errcode.Code]time.Time),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notify) Name() string { return "notify" }

func (n *Notify) ShouldHandle(cfg apis.Config) bool {
	d, ok := n.defaults(cfg.Type)
	return ok && d.NotifyTeam
}

func (n *Notify) Handle(ctx context.Context, rep apis.Report) error {
	if !n.shouldSend(rep.Code) {
		return nil
	}
	subject := fmt.Sprintf("[%s] %s", rep.Config.Type, rep.Code)
	body := rep.Message
	if rep.Cause != nil {
		body = fmt.Sprintf("%s\n\ncause: %v", body, rep.Cause)
	}
	if len(rep.Context) > 0 {
		body = fmt.Sprintf("%s\n\ncontext: %v", body, rep.Context)
	}
	return n.mailer.Send(ctx, n.to, subject, body)
}

func (n *Notify) shouldSend(c errcode.Code) bool {
	if n.cooldown <= 0 {
		return true
	}
	now := n.now()
	n.mu.Lock()
	defer n.mu.Unlock()
	if last, ok := n.lastSent[c]; ok && now.Sub(last) < n.cooldown {
		return false
	}
	n.lastSent[c] = now
	return true
}
