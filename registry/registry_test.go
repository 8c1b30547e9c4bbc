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
	"sort"
	"testing"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

func mustNew(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNewSeedsBuiltins(t *testing.T) {
	r := mustNew(t)

	for _, c := range []errcode.Code{errcode.Undefined, errcode.Fallback, errcode.PageNotFound} {
		if !r.Has(c) {
			t.Fatalf("builtin %s missing", c)
		}
	}
	if _, ok := r.TypeDefaults(policy.SeverityCritical); !ok {
		t.Fatalf("critical type defaults missing")
	}
	if d, ok := r.BlockingDefaults(policy.BlockingFull); !ok || !d.TerminateRequest {
		t.Fatalf("blocking defaults = %+v, %v; want TerminateRequest", d, ok)
	}
}

func TestOptionOverridesBuiltin(t *testing.T) {
	custom := apis.Config{
		Type:        policy.SeverityNotice,
		Blocking:    policy.BlockingNone,
		HTTPStatus:  404,
		DisplayMode: policy.DisplayToast,
		UserMessage: "Nothing here.",
	}
	r := mustNew(t, WithError(errcode.PageNotFound, custom))

	got, ok := r.Static(errcode.PageNotFound)
	if !ok {
		t.Fatalf("PAGE_NOT_FOUND missing")
	}
	if got.Type != policy.SeverityNotice || got.UserMessage != "Nothing here." {
		t.Fatalf("got %+v, want custom override", got)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	if _, err := New(WithError("x", apis.Config{Type: policy.SeverityError})); err == nil {
		t.Fatalf("New accepted invalid code")
	}
	bad := apis.Config{Type: "catastrophic"}
	if _, err := New(WithError("SOME_ERROR", bad)); err == nil {
		t.Fatalf("New accepted invalid severity")
	}
}

func TestWithoutBuiltins(t *testing.T) {
	r := mustNew(t, WithoutBuiltins())
	if r.Has(errcode.PageNotFound) {
		t.Fatalf("catalog present despite WithoutBuiltins")
	}
	// Defaults tables survive so Materialize keeps working.
	if _, ok := r.TypeDefaults(policy.SeverityError); !ok {
		t.Fatalf("type defaults missing")
	}
}

func TestDefineWinsOverStatic(t *testing.T) {
	r := mustNew(t)
	cfg := apis.Config{
		Type:        policy.SeverityNotice,
		Blocking:    policy.BlockingNone,
		DisplayMode: policy.DisplayLogOnly,
	}
	if err := r.Define(errcode.PageNotFound, cfg); err != nil {
		t.Fatalf("Define: %v", err)
	}

	got, ok := r.Lookup(errcode.PageNotFound)
	if !ok || got.Type != policy.SeverityNotice {
		t.Fatalf("Lookup = %+v, %v; want runtime overlay", got, ok)
	}
	if st, _ := r.Static(errcode.PageNotFound); st.Type == policy.SeverityNotice {
		t.Fatalf("Define mutated the static table")
	}
}

func TestDefineNormalizesAndValidates(t *testing.T) {
	r := mustNew(t)
	cfg := apis.Config{Type: policy.SeverityError}
	if err := r.Define("payment-declined", cfg); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if !r.Has("PAYMENT_DECLINED") {
		t.Fatalf("normalized code not defined")
	}
	if err := r.Define("OK_CODE", apis.Config{Type: "nope"}); err == nil {
		t.Fatalf("Define accepted invalid config")
	}
}

func TestKnownSorted(t *testing.T) {
	r := mustNew(t)
	if err := r.Define("AAA_FIRST", apis.Config{Type: policy.SeverityNotice}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	known := r.Known()
	if !sort.SliceIsSorted(known, func(i, j int) bool { return known[i] < known[j] }) {
		t.Fatalf("Known not sorted: %v", known)
	}
	if known[0] != "AAA_FIRST" {
		t.Fatalf("known[0] = %s, want AAA_FIRST", known[0])
	}
}

func TestKnownByType(t *testing.T) {
	r := mustNew(t)
	for _, c := range r.KnownByType(policy.SeverityCritical) {
		cfg, _ := r.Lookup(c)
		if cfg.Type != policy.SeverityCritical {
			t.Fatalf("%s has type %s", c, cfg.Type)
		}
	}
	if len(r.KnownByType(policy.SeverityCritical)) == 0 {
		t.Fatalf("no critical codes in the builtin catalog")
	}
}

func TestExportOverlayWins(t *testing.T) {
	r := mustNew(t)
	if err := r.Define(errcode.NetworkError, apis.Config{Type: policy.SeverityNotice}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	out := r.Export()
	if out["NETWORK_ERROR"].Type != policy.SeverityNotice {
		t.Fatalf("export kept static NETWORK_ERROR: %+v", out["NETWORK_ERROR"])
	}
}

func TestMaterialize(t *testing.T) {
	r := mustNew(t)
	tests := []struct {
		name string
		in   apis.Config
		want apis.Config
	}{
		{
			name: "empty",
			in:   apis.Config{},
			want: apis.Config{
				Type:        policy.SeverityError,
				Blocking:    policy.BlockingNone,
				HTTPStatus:  400,
				DisplayMode: policy.DisplayDiv,
			},
		},
		{
			name: "status from severity",
			in:   apis.Config{Type: policy.SeverityCritical},
			want: apis.Config{
				Type:        policy.SeverityCritical,
				Blocking:    policy.BlockingNone,
				HTTPStatus:  500,
				DisplayMode: policy.DisplayDiv,
			},
		},
		{
			name: "explicit fields kept",
			in: apis.Config{
				Type:        policy.SeverityNotice,
				Blocking:    policy.BlockingFull,
				HTTPStatus:  418,
				DisplayMode: policy.DisplayToast,
			},
			want: apis.Config{
				Type:        policy.SeverityNotice,
				Blocking:    policy.BlockingFull,
				HTTPStatus:  418,
				DisplayMode: policy.DisplayToast,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Materialize(tt.in); got != tt.want {
				t.Fatalf("Materialize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
