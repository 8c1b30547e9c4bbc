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

// Package dispatch runs the registered error handlers for each reported
// error, in registration order, with full isolation: a handler that fails
// or panics is logged and skipped, never aborting the chain or the caller.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"ultrasuite.dev/ultraerr/apis"
)

// Dispatcher owns the ordered handler chain.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []apis.Handler
	names    map[string]struct{}
	log      logrus.FieldLogger
}

// New returns an empty Dispatcher. log must not be nil.
func New(log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		names: make(map[string]struct{}),
		log:   log,
	}
}

// Register appends h to the chain. Registration is idempotent by handler
// name; a duplicate is ignored and Register returns false.
func (d *Dispatcher) Register(h apis.Handler) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	name := h.Name()
	if _, ok := d.names[name]; ok {
		return false
	}
	d.names[name] = struct{}{}
	d.handlers = append(d.handlers, h)
	return true
}

// Handlers returns the chain's handler names in registration order.
func (d *Dispatcher) Handlers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.handlers))
	for i, h := range d.handlers {
		out[i] = h.Name()
	}
	return out
}

// Dispatch offers rep to every handler in order and returns how many ran.
// Each handler decides via ShouldHandle whether the report concerns it.
// Handler errors and panics are contained: they are logged with the
// handler's name and the chain continues.
func (d *Dispatcher) Dispatch(ctx context.Context, rep apis.Report) int {
	d.mu.RLock()
	chain := make([]apis.Handler, len(d.handlers))
	copy(chain, d.handlers)
	d.mu.RUnlock()

	ran := 0
	for _, h := range chain {
		if !h.ShouldHandle(rep.Config) {
			continue
		}
		ran++
		if err := d.run(ctx, h, rep); err != nil {
			handlerFailures.WithLabelValues(h.Name()).Inc()
			d.log.WithFields(logrus.Fields{
				"handler":    h.Name(),
				"error_code": string(rep.Code),
			}).WithError(err).Error("error handler failed")
		}
	}
	dispatchesTotal.Inc()
	d.log.WithFields(logrus.Fields{
		"error_code": string(rep.Code),
		"ran":        ran,
		"registered": len(chain),
	}).Debug("dispatched error handlers")
	return ran
}

func (d *Dispatcher) run(ctx context.Context, h apis.Handler, rep apis.Report) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, rep)
}
