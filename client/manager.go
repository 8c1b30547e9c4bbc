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

package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/dispatch"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/format"
	"ultrasuite.dev/ultraerr/policy"
	"ultrasuite.dev/ultraerr/resolve"
	"ultrasuite.dev/ultraerr/translate"
)

// Manager is the client-side pipeline: it resolves and formats errors
// against the loaded policy, runs the handler chain, and publishes an
// ultraError event for every handled error.
//
// Errors reported before the config finishes loading are not dropped:
// the reporting call blocks on the shared load and proceeds once the
// policy (or its fallback) is available.
type Manager struct {
	loader     *Loader
	bus        *Bus
	log        logrus.FieldLogger
	tr         apis.Translator
	dispatcher *dispatch.Dispatcher
	sinks      []apis.NotificationSink
	escalate   func(apis.Event)

	mu        sync.Mutex
	resolver  apis.Resolver
	formatter *format.Formatter
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTranslator overrides the message-key translator.
func WithTranslator(tr apis.Translator) ManagerOption {
	return func(m *Manager) { m.tr = tr }
}

// WithSink registers a notification sink for its display mode.
func WithSink(s apis.NotificationSink) ManagerOption {
	return func(m *Manager) { m.sinks = append(m.sinks, s) }
}

// WithHandler appends an extra handler to the chain.
func WithHandler(h apis.Handler) ManagerOption {
	return func(m *Manager) { m.dispatcher.Register(h) }
}

// WithEscalation installs the callback invoked for critical, fully
// blocking errors after normal handling.
func WithEscalation(fn func(apis.Event)) ManagerOption {
	return func(m *Manager) { m.escalate = fn }
}

// NewManager returns a Manager over loader and bus. log must not be nil.
func NewManager(loader *Loader, bus *Bus, log logrus.FieldLogger, opts ...ManagerOption) *Manager {
	m := &Manager{
		loader:     loader,
		bus:        bus,
		log:        log,
		tr:         translate.Noop(),
		dispatcher: dispatch.New(log),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.dispatcher.Register(NewDisplayHandler(log, m.sinks...))
	return m
}

// HandleServerError handles an error code received from the server, for
// example out of a non-2xx response envelope.
func (m *Manager) HandleServerError(ctx context.Context, code errcode.Code, ectx map[string]any) error {
	return m.handle(ctx, code, ectx, nil)
}

// HandleClientError handles a local failure: it is classified as
// UNEXPECTED_ERROR and the original error travels with the event.
func (m *Manager) HandleClientError(ctx context.Context, err error, ectx map[string]any) error {
	return m.handle(ctx, errcode.UnexpectedError, ectx, err)
}

func (m *Manager) handle(ctx context.Context, code errcode.Code, ectx map[string]any, cause error) error {
	if err := m.init(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	resolver, formatter := m.resolver, m.formatter
	m.mu.Unlock()

	res, err := resolver.Resolve(code, ectx)
	if err != nil {
		return err
	}
	msg := formatter.Message(res.Effective, res.Config, res.Context)

	rep := apis.Report{
		Code:    res.Effective,
		Config:  res.Config,
		Message: msg,
		Context: res.Context,
		Cause:   cause,
	}
	m.dispatcher.Dispatch(ctx, rep)

	ev := apis.Event{
		Name:        EventName,
		ID:          uuid.NewString(),
		ErrorCode:   string(res.Effective),
		Message:     msg,
		Blocking:    res.Config.Blocking,
		DisplayMode: res.Config.DisplayMode,
		Context:     res.Context,
		Timestamp:   time.Now().UTC(),
	}
	if cause != nil {
		ev.Original = &apis.OriginalError{
			Name:    fmt.Sprintf("%T", cause),
			Message: cause.Error(),
		}
	}
	m.bus.Publish(ev)

	if m.escalate != nil &&
		res.Config.Type == policy.SeverityCritical &&
		res.Config.Blocking == policy.BlockingFull {
		m.escalate(ev)
	}
	return nil
}

// init builds the resolver and formatter from the loaded payload. The
// first reporting goroutine pays for the load; the loader's single-flight
// keeps concurrent reporters from fetching twice.
func (m *Manager) init(ctx context.Context) error {
	if err := m.loader.Load(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolver != nil {
		return nil
	}
	reg, err := m.loader.Registry()
	if err != nil {
		return fmt.Errorf("client: build registry: %w", err)
	}
	m.resolver = resolve.New(reg, m.log)
	m.formatter = format.New(m.tr, m.log)
	return nil
}
