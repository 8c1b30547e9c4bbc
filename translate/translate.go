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

// Package translate provides the message-key lookup used while rendering
// user-facing error messages. The Map implementation is enough for a
// single-locale deployment; applications with a real i18n layer implement
// apis.Translator over it instead.
package translate

import "sync"

// Map is a mutable, concurrency-safe translation table.
type Map struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMap returns a Map seeded with entries. The input map is copied.
func NewMap(entries map[string]string) *Map {
	m := &Map{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		m.entries[k] = v
	}
	return m
}

// Get returns the translation for key.
func (m *Map) Get(key string) (string, bool) {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	return v, ok
}

// Add installs or replaces the translation for key.
func (m *Map) Add(key, value string) {
	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
}

// Noop returns a translator that resolves nothing, forcing every message
// through the config-level fallbacks.
func Noop() *Map { return NewMap(nil) }

// Builtin returns the English table covering the built-in error catalog.
func Builtin() *Map {
	return NewMap(map[string]string{
		"ultraerr.generic_error":          "An unexpected error occurred. Please try again later.",
		"ultraerr.undefined_error_code":   "An unexpected error occurred. Please try again later.",
		"ultraerr.fallback_error":         "An unexpected error occurred. Please try again later.",
		"ultraerr.generic_server_error":   "The server could not complete your request. Please try again.",
		"ultraerr.unexpected_error":       "Something went wrong. Please try again later.",
		"ultraerr.network_error":          "A network problem interrupted the request. Check your connection and retry.",
		"ultraerr.page_not_found":         "The page you requested could not be found.",
		"ultraerr.authentication_error":   "You need to sign in to access this page.",
		"ultraerr.session_expired":        "Your session has expired. Please sign in again.",
		"ultraerr.csrf_token_mismatch":    "Your session has expired. Please reload the page and try again.",
		"ultraerr.validation_error":       "Some of the submitted values are invalid.",
		"ultraerr.database_error":         "A storage problem prevented the request from completing.",
		"ultraerr.record_not_found":       "The requested record could not be found.",
		"ultraerr.file_not_found":         "The file :filename could not be found.",
		"ultraerr.invalid_file":           "The uploaded file is not valid.",
		"ultraerr.invalid_file_extension": "Files of type :extension are not allowed.",
		"ultraerr.max_file_size":          "The file exceeds the maximum allowed size of :max_size.",
		"ultraerr.upload_failed":          "The file upload failed. Please try again.",
		"ultraerr.temp_file_create_failed": "The file could not be processed. Please try again.",
		"ultraerr.temp_file_not_found":    "The uploaded file is no longer available. Please upload it again.",
		"ultraerr.virus_found":            "The uploaded file was rejected by the virus scanner.",
		"ultraerr.scan_error":             "The uploaded file could not be scanned. Please try again.",
	})
}
