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

	"github.com/sirupsen/logrus"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/policy"
)

// CallbackSink adapts a plain function into a notification sink for one
// display mode.
type CallbackSink struct {
	mode policy.DisplayMode
	fn   func(ctx context.Context, ev apis.Event) error
}

// NewCallbackSink returns a sink for mode backed by fn.
func NewCallbackSink(mode policy.DisplayMode, fn func(ctx context.Context, ev apis.Event) error) *CallbackSink {
	return &CallbackSink{mode: mode, fn: fn}
}

func (s *CallbackSink) Mode() policy.DisplayMode { return s.mode }

func (s *CallbackSink) Show(ctx context.Context, ev apis.Event) error {
	return s.fn(ctx, ev)
}

// LogSink writes log-only events to the structured log.
type LogSink struct {
	log logrus.FieldLogger
}

// NewLogSink returns the sink for the log-only display mode.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Mode() policy.DisplayMode { return policy.DisplayLogOnly }

func (s *LogSink) Show(_ context.Context, ev apis.Event) error {
	s.log.WithFields(logrus.Fields{
		"error_code": ev.ErrorCode,
		"event_id":   ev.ID,
	}).Info(ev.Message)
	return nil
}

// DisplayHandler routes a handled error to the sink registered for its
// display mode, falling back to the div sink when the mode has none.
type DisplayHandler struct {
	sinks map[policy.DisplayMode]apis.NotificationSink
	log   logrus.FieldLogger
}

// NewDisplayHandler returns a display handler over sinks.
func NewDisplayHandler(log logrus.FieldLogger, sinks ...apis.NotificationSink) *DisplayHandler {
	h := &DisplayHandler{
		sinks: make(map[policy.DisplayMode]apis.NotificationSink, len(sinks)),
		log:   log,
	}
	for _, s := range sinks {
		h.sinks[s.Mode()] = s
	}
	return h
}

func (h *DisplayHandler) Name() string { return "display" }

func (h *DisplayHandler) ShouldHandle(apis.Config) bool { return true }

func (h *DisplayHandler) Handle(ctx context.Context, rep apis.Report) error {
	ev := apis.Event{
		Name:      EventName,
		ErrorCode: string(rep.Code),
		Message:   rep.Message,
		Blocking:  rep.Config.Blocking,
		Context:   rep.Context,
	}
	mode := rep.Config.DisplayMode
	sink, ok := h.sinks[mode]
	if !ok {
		sink, ok = h.sinks[policy.DisplayDiv]
		if !ok {
			h.log.WithField("display_mode", string(mode)).Debug("no sink for display mode")
			return nil
		}
	}
	ev.DisplayMode = sink.Mode()
	return sink.Show(ctx, ev)
}
