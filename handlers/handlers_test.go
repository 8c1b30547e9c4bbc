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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/policy"
)

func TestLogHandlerLevels(t *testing.T) {
	tests := []struct {
		severity policy.Severity
		level    logrus.Level
		critical bool
	}{
		{policy.SeverityCritical, logrus.ErrorLevel, true},
		{policy.SeverityError, logrus.ErrorLevel, false},
		{policy.SeverityWarning, logrus.WarnLevel, false},
		{policy.SeverityNotice, logrus.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			log, hook := logtest.NewNullLogger()
			h := NewLog(log)
			rep := apis.Report{
				Code:    "SOME_ERROR",
				Config:  apis.Config{Type: tt.severity},
				Message: "it broke",
				Cause:   errors.New("root cause"),
			}
			if err := h.Handle(context.Background(), rep); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			entry := hook.LastEntry()
			if entry == nil || entry.Level != tt.level {
				t.Fatalf("entry = %+v, want level %s", entry, tt.level)
			}
			if tt.critical && entry.Data["severity"] != "critical" {
				t.Fatalf("critical marker missing: %v", entry.Data)
			}
		})
	}
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(_ context.Context, _ []string, subject, _ string) error {
	m.sent = append(m.sent, subject)
	return m.err
}

func typeDefaults(s policy.Severity) (apis.TypeDefaults, bool) {
	switch s {
	case policy.SeverityCritical, policy.SeverityError:
		return apis.TypeDefaults{NotifyTeam: true}, true
	case policy.SeverityWarning:
		return apis.TypeDefaults{}, true
	}
	return apis.TypeDefaults{}, false
}

func TestNotifyShouldHandle(t *testing.T) {
	n := NewNotify(&fakeMailer{}, []string{"ops@example.com"}, typeDefaults)
	if !n.ShouldHandle(apis.Config{Type: policy.SeverityCritical}) {
		t.Fatalf("critical not handled")
	}
	if n.ShouldHandle(apis.Config{Type: policy.SeverityWarning}) {
		t.Fatalf("warning handled despite notify_team=false")
	}
	if n.ShouldHandle(apis.Config{Type: policy.SeverityNotice}) {
		t.Fatalf("unknown severity handled")
	}
}

func TestNotifyCooldown(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := &fakeMailer{}
	n := NewNotify(m, []string{"ops@example.com"}, typeDefaults,
		WithCooldown(10*time.Minute),
		WithClock(func() time.Time { return now }),
	)
	rep := apis.Report{
		Code:    "DATABASE_ERROR",
		Config:  apis.Config{Type: policy.SeverityCritical},
		Message: "query failed",
	}

	for i := 0; i < 3; i++ {
		if err := n.Handle(context.Background(), rep); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	if len(m.sent) != 1 {
		t.Fatalf("sent %d mails inside the cooldown, want 1", len(m.sent))
	}
	if !strings.Contains(m.sent[0], "DATABASE_ERROR") {
		t.Fatalf("subject = %q", m.sent[0])
	}

	now = now.Add(11 * time.Minute)
	if err := n.Handle(context.Background(), rep); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("sent = %d after cooldown, want 2", len(m.sent))
	}

	// A different code is throttled independently.
	other := rep
	other.Code = "SCAN_ERROR"
	if err := n.Handle(context.Background(), other); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(m.sent) != 3 {
		t.Fatalf("sent = %d for a distinct code, want 3", len(m.sent))
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(":memory:")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecordAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rep := apis.Report{
		Code:    "UPLOAD_FAILED",
		Config:  apis.Config{Type: policy.SeverityError},
		Message: "upload failed",
		Context: map[string]any{"filename": "a.pdf"},
		Cause:   errors.New("disk full"),
	}
	id, err := s.Record(ctx, rep)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == "" {
		t.Fatalf("empty occurrence id")
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d occurrences", len(got))
	}
	o := got[0]
	if o.Code != "UPLOAD_FAILED" || o.Severity != policy.SeverityError {
		t.Fatalf("occurrence = %+v", o)
	}
	if o.Context["filename"] != "a.pdf" {
		t.Fatalf("context = %v", o.Context)
	}
	if o.Cause != "disk full" {
		t.Fatalf("cause = %q", o.Cause)
	}

	n, err := s.CountByCode(ctx, "UPLOAD_FAILED", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountByCode: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
}

func TestPersistSkipsNotices(t *testing.T) {
	s := openTestStore(t)
	h := NewPersist(s)

	if h.ShouldHandle(apis.Config{Type: policy.SeverityNotice}) {
		t.Fatalf("notice persisted")
	}
	if !h.ShouldHandle(apis.Config{Type: policy.SeverityWarning}) {
		t.Fatalf("warning not persisted")
	}
}
