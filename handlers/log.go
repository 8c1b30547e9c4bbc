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

	"github.com/sirupsen/logrus"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/policy"
)

// Log writes every handled error to the structured log at the level
// implied by its severity. It always participates in the chain.
type Log struct {
	log logrus.FieldLogger
}

// NewLog returns the logging handler.
func NewLog(log logrus.FieldLogger) *Log {
	return &Log{log: log}
}

func (h *Log) Name() string { return "log" }

func (h *Log) ShouldHandle(apis.Config) bool { return true }

func (h *Log) Handle(_ context.Context, rep apis.Report) error {
	entry := h.log.WithFields(logrus.Fields{
		"error_code": string(rep.Code),
		"blocking":   string(rep.Config.Blocking),
	})
	if len(rep.Context) > 0 {
		entry = entry.WithField("context", rep.Context)
	}
	if rep.Cause != nil {
		entry = entry.WithError(rep.Cause)
	}
	switch rep.Config.Type {
	case policy.SeverityCritical:
		entry.WithField("severity", "critical").Error(rep.Message)
	case policy.SeverityError:
		entry.Error(rep.Message)
	case policy.SeverityWarning:
		entry.Warn(rep.Message)
	default:
		entry.Info(rep.Message)
	}
	return nil
}
