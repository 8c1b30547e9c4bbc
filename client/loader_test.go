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
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/policy"
)

func configServer(t *testing.T, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		payload := apis.ConfigPayload{
			Errors: map[string]apis.Config{
				"PAYMENT_DECLINED": {
					Type:        policy.SeverityError,
					Blocking:    policy.BlockingSemi,
					HTTPStatus:  402,
					DisplayMode: policy.DisplaySweetAlert,
					UserMessage: "Your payment was declined.",
				},
			},
			Types: map[string]apis.TypeDefaults{
				"error": {LogLevel: "error", HTTPStatus: 400},
			},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadSingleFlight(t *testing.T) {
	var fetches atomic.Int32
	srv := configServer(t, &fetches)

	log, _ := logtest.NewNullLogger()
	l := NewLoader(srv.URL, NewBus(), log)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Load(context.Background()); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := fetches.Load(); n != 1 {
		t.Fatalf("fetched %d times, want 1", n)
	}
	if !l.Loaded() || l.UsedFallback() {
		t.Fatalf("loaded = %v, fallback = %v", l.Loaded(), l.UsedFallback())
	}
	if _, ok := l.Payload().Errors["PAYMENT_DECLINED"]; !ok {
		t.Fatalf("payload = %+v", l.Payload())
	}
}

func TestLoadFallbackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	log, hook := logtest.NewNullLogger()
	bus := NewBus()
	var loadedEvents atomic.Int32
	bus.Subscribe(EventConfigLoaded, func(apis.Event) { loadedEvents.Add(1) })

	l := NewLoader(srv.URL, bus, log,
		WithMaxRetries(1),
		WithRetryInterval(time.Millisecond),
	)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !l.UsedFallback() {
		t.Fatalf("fallback not installed")
	}
	if _, ok := l.Payload().Errors["UNDEFINED_ERROR_CODE"]; !ok {
		t.Fatalf("fallback payload = %+v", l.Payload())
	}
	if loadedEvents.Load() != 1 {
		t.Fatalf("loaded events = %d", loadedEvents.Load())
	}
	if hook.LastEntry() == nil {
		t.Fatalf("exhausted retries not logged")
	}
}

func TestLoaderRegistry(t *testing.T) {
	var fetches atomic.Int32
	srv := configServer(t, &fetches)
	log, _ := logtest.NewNullLogger()
	l := NewLoader(srv.URL, NewBus(), log)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	reg, err := l.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	cfg, ok := reg.Static("PAYMENT_DECLINED")
	if !ok || cfg.HTTPStatus != 402 {
		t.Fatalf("cfg = %+v, %v", cfg, ok)
	}
	// The endpoint's export is authoritative, no server catalog behind it.
	if reg.Has("VIRUS_FOUND") {
		t.Fatalf("builtin catalog leaked into the client registry")
	}
}
