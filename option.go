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

package ultraerr

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithContextOption adds a single context key/value on construction.
// Intended to be used with E(...).
func WithContextOption(k string, v any) Option {
	return func(e *Error) *Error {
		return e.WithContextValue(k, v)
	}
}

// WithContextMapOption merges multiple context key/values on construction.
// Intended to be used with E(...).
func WithContextMapOption(kv map[string]any) Option {
	return func(e *Error) *Error {
		return e.WithContext(kv)
	}
}

// WithCauseOption attaches a cause on construction.
// Intended to be used with E(...).
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}
