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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
	"ultrasuite.dev/ultraerr/registry"
)

// DefaultMaxRetries bounds the fetch attempts before the loader falls
// back to the built-in policy.
const DefaultMaxRetries = 3

// Loader fetches the exported error config exactly once, no matter how
// many goroutines ask for it concurrently. On exhaustion it installs a
// minimal fallback policy instead of failing, so error handling never
// depends on the endpoint being up.
type Loader struct {
	url      string
	client   *http.Client
	log      logrus.FieldLogger
	bus      *Bus
	retries  uint64
	interval time.Duration

	mu       sync.Mutex
	started  bool
	done     chan struct{}
	payload  apis.ConfigPayload
	fallback bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient overrides the HTTP client used for the fetch.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithMaxRetries bounds the fetch attempts.
func WithMaxRetries(n uint64) LoaderOption {
	return func(l *Loader) { l.retries = n }
}

// WithRetryInterval sets the initial backoff interval between attempts.
func WithRetryInterval(d time.Duration) LoaderOption {
	return func(l *Loader) { l.interval = d }
}

// NewLoader returns a Loader for the config endpoint at url, publishing
// the loaded event on bus. log and bus must not be nil.
func NewLoader(url string, bus *Bus, log logrus.FieldLogger, opts ...LoaderOption) *Loader {
	l := &Loader{
		url:     url,
		client:  http.DefaultClient,
		log:     log,
		bus:     bus,
		retries: DefaultMaxRetries,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load blocks until the config is available, fetching it on the first
// call. Concurrent callers share the single fetch. The error is non-nil
// only when ctx expires before loading finishes.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	if !l.started {
		l.started = true
		go l.fetch(ctx)
	}
	l.mu.Unlock()

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loaded reports whether the config is available, without blocking.
func (l *Loader) Loaded() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// UsedFallback reports whether the loader gave up on the endpoint and
// installed the built-in fallback policy.
func (l *Loader) UsedFallback() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fallback
}

// Payload returns the loaded config. Valid only after Load returns.
func (l *Loader) Payload() apis.ConfigPayload {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.payload
}

// Registry builds a policy registry from the loaded payload. The built-in
// server catalog is skipped so the endpoint's export is authoritative.
func (l *Loader) Registry() (*registry.Registry, error) {
	payload := l.Payload()
	opts := []registry.Option{registry.WithoutBuiltins(), registry.WithErrors(payload.Errors)}
	for raw, d := range payload.Types {
		s, err := policy.ParseSeverity(raw)
		if err != nil {
			continue
		}
		opts = append(opts, registry.WithTypeDefaults(s, d))
	}
	for raw, d := range payload.BlockingLevels {
		bl, err := policy.ParseBlocking(raw)
		if err != nil {
			continue
		}
		opts = append(opts, registry.WithBlockingDefaults(bl, d))
	}
	return registry.New(opts...)
}

func (l *Loader) fetch(ctx context.Context) {
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("client: config endpoint returned %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var payload apis.ConfigPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return backoff.Permanent(fmt.Errorf("client: decode config: %w", err))
		}
		l.mu.Lock()
		l.payload = payload
		l.mu.Unlock()
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if l.interval > 0 {
		bo.InitialInterval = l.interval
	}
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, l.retries), ctx))
	if err != nil {
		l.log.WithError(err).Error("loading error config failed, using fallback policy")
		l.mu.Lock()
		l.payload = fallbackPolicy()
		l.fallback = true
		l.mu.Unlock()
	}
	close(l.done)
	l.bus.Publish(apis.Event{Name: EventConfigLoaded})
}

// fallbackPolicy is the minimal policy installed when the endpoint could
// not be reached: enough entries to classify and display anything.
func fallbackPolicy() apis.ConfigPayload {
	div := func(sev policy.Severity, msg string) apis.Config {
		return apis.Config{
			Type:        sev,
			Blocking:    policy.BlockingNone,
			DisplayMode: policy.DisplayDiv,
			UserMessage: msg,
		}
	}
	generic := "An unexpected error occurred. Please try again later."
	return apis.ConfigPayload{
		Errors: map[string]apis.Config{
			string(errcode.Undefined):          div(policy.SeverityCritical, generic),
			string(errcode.Fallback):           div(policy.SeverityCritical, generic),
			string(errcode.UnexpectedError):    div(policy.SeverityCritical, generic),
			string(errcode.GenericServerError): div(policy.SeverityError, "The server could not complete your request. Please try again."),
			string(errcode.NetworkError): {
				Type:        policy.SeverityError,
				Blocking:    policy.BlockingNone,
				DisplayMode: policy.DisplayToast,
				UserMessage: "A network problem interrupted the request. Check your connection and retry.",
			},
		},
	}
}
