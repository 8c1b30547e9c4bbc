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

package respond

import (
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	ultraerr "ultrasuite.dev/ultraerr"
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/policy"
)

type fakeRequester struct {
	json bool
	path string
}

func (r *fakeRequester) ExpectsJSON() bool { return r.json }
func (r *fakeRequester) Is(pattern string) bool {
	// Only the default api pattern matters for these tests.
	return pattern == DefaultAPIPattern && len(r.path) >= 4 && r.path[:4] == "api/"
}
func (r *fakeRequester) Method() string { return "GET" }
func (r *fakeRequester) Path() string   { return r.path }
func (r *fakeRequester) IP() string     { return "127.0.0.1" }
func (r *fakeRequester) UserID() string { return "" }

type fakeFlasher struct {
	flashed []string
	cleared int
	err     error
}

func (f *fakeFlasher) Flash(msg string, _ apis.Config) error {
	f.flashed = append(f.flashed, msg)
	return f.err
}
func (f *fakeFlasher) Clear() error {
	f.cleared++
	return nil
}

func input(bl policy.Blocking) Input {
	return Input{
		Code: "UPLOAD_FAILED",
		Config: apis.Config{
			Type:        policy.SeverityError,
			Blocking:    bl,
			HTTPStatus:  422,
			DisplayMode: policy.DisplayToast,
		},
		Message: "upload failed",
	}
}

func TestBuildJSON(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	b := New(log)

	tests := []struct {
		name string
		req  *fakeRequester
	}{
		{"accept header", &fakeRequester{json: true, path: "upload"}},
		{"api path", &fakeRequester{path: "api/upload"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := b.Build(tt.req, &fakeFlasher{}, input(policy.BlockingFull))
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if env == nil {
				t.Fatalf("no envelope")
			}
			if env.Status != 422 || env.Error != "UPLOAD_FAILED" || env.Message != "upload failed" {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Blocking != policy.BlockingFull || env.DisplayMode != policy.DisplayToast {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestBuildForceThrow(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	b := New(log)

	// ForceThrow wins even for JSON traffic.
	in := input(policy.BlockingNone)
	in.ForceThrow = true
	in.Cause = errors.New("root")
	env, err := b.Build(&fakeRequester{json: true}, &fakeFlasher{}, in)
	if env != nil || err == nil {
		t.Fatalf("env = %v, err = %v", env, err)
	}
	var ue *ultraerr.Error
	if !errors.As(err, &ue) {
		t.Fatalf("err = %T", err)
	}
	if ue.Code != "UPLOAD_FAILED" || ue.HTTPStatus != 422 {
		t.Fatalf("exception = %+v", ue)
	}
	if !errors.Is(err, in.Cause) {
		t.Fatalf("cause not wrapped")
	}
}

func TestBuildBlockingThrows(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	b := New(log)

	fl := &fakeFlasher{}
	env, err := b.Build(&fakeRequester{path: "profile"}, fl, input(policy.BlockingFull))
	if env != nil || err == nil {
		t.Fatalf("env = %v, err = %v", env, err)
	}
	if len(fl.flashed) != 0 {
		t.Fatalf("blocking error flashed")
	}
}

func TestBuildNilRequesterThrows(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	b := New(log)
	if _, err := b.Build(nil, nil, input(policy.BlockingNone)); err == nil {
		t.Fatalf("no exception without a requester")
	}
}

func TestBuildFlash(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	b := New(log)

	fl := &fakeFlasher{}
	env, err := b.Build(&fakeRequester{path: "profile"}, fl, input(policy.BlockingSemi))
	if env != nil || err != nil {
		t.Fatalf("env = %v, err = %v", env, err)
	}
	if len(fl.flashed) != 1 || fl.flashed[0] != "upload failed" {
		t.Fatalf("flashed = %v", fl.flashed)
	}
}

func TestBuildFlashFailureContained(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	b := New(log)

	fl := &fakeFlasher{err: errors.New("session gone")}
	if _, err := b.Build(&fakeRequester{path: "profile"}, fl, input(policy.BlockingNone)); err != nil {
		t.Fatalf("flash failure surfaced: %v", err)
	}
	if hook.LastEntry() == nil {
		t.Fatalf("flash failure not logged")
	}
}

func TestBuildClearSession(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	b := New(log, WithBlockingDefaults(func(bl policy.Blocking) (apis.BlockingDefaults, bool) {
		return apis.BlockingDefaults{FlashSession: true, ClearSession: bl == policy.BlockingSemi}, true
	}))

	fl := &fakeFlasher{}
	if _, err := b.Build(&fakeRequester{path: "profile"}, fl, input(policy.BlockingSemi)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fl.cleared != 1 {
		t.Fatalf("cleared = %d", fl.cleared)
	}
}
