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

// Package format renders the user-facing message for a resolved error:
// it picks the best message source for the code and substitutes context
// values into :placeholder tokens.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
)

// DefaultGenericKey is the translation key tried before the hard-coded
// last-resort message.
const DefaultGenericKey = "ultraerr.generic_error"

const lastResort = "An unexpected error occurred. Please try again later."

// Formatter selects and renders user messages. The zero value is not
// usable; construct with New.
type Formatter struct {
	tr         apis.Translator
	log        logrus.FieldLogger
	genericKey string
	allowDev   bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithGenericKey overrides the translation key used as the generic
// fallback message.
func WithGenericKey(key string) Option {
	return func(f *Formatter) { f.genericKey = key }
}

// WithDevMessages lets dev_message reach end users when no user-facing
// source exists. Intended for local development only; each use is logged.
func WithDevMessages() Option {
	return func(f *Formatter) { f.allowDev = true }
}

// New returns a Formatter over tr. log must not be nil.
func New(tr apis.Translator, log logrus.FieldLogger, opts ...Option) *Formatter {
	f := &Formatter{tr: tr, log: log, genericKey: DefaultGenericKey}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Message renders the user-facing message for code c under cfg.
//
// Sources are tried in order: a translation keyed by the code itself, the
// config's user_message_key, its literal user_message, the dev_message
// when explicitly enabled, the generic translation key, and finally a
// hard-coded last-resort string. Placeholders in the chosen message are
// substituted from ectx.
func (f *Formatter) Message(c errcode.Code, cfg apis.Config, ectx map[string]any) string {
	if msg, ok := f.tr.Get(string(c)); ok {
		return Substitute(msg, ectx)
	}
	if cfg.UserMessageKey != "" {
		if msg, ok := f.tr.Get(cfg.UserMessageKey); ok {
			return Substitute(msg, ectx)
		}
	}
	if cfg.UserMessage != "" {
		return Substitute(cfg.UserMessage, ectx)
	}
	if f.allowDev && cfg.DevMessage != "" {
		f.log.WithFields(logrus.Fields{
			"error_code": string(c),
		}).Warn("serving dev_message to the user, no user-facing message configured")
		return Substitute(cfg.DevMessage, ectx)
	}
	if msg, ok := f.tr.Get(f.genericKey); ok {
		return Substitute(msg, ectx)
	}
	return lastResort
}

// Substitute replaces each ":key" token in msg with the stringified
// context value for key. Longer keys are applied first so that, say,
// :filename is not clobbered by a :file entry. Tokens without a matching
// context entry are left untouched.
func Substitute(msg string, ectx map[string]any) string {
	if len(ectx) == 0 || !strings.Contains(msg, ":") {
		return msg
	}
	keys := make([]string, 0, len(ectx))
	for k := range ectx {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		msg = strings.ReplaceAll(msg, ":"+k, stringify(ectx[k]))
	}
	return msg
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}
