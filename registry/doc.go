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

// Package registry holds the error-policy tables: per-code configs,
// per-severity defaults and per-blocking-level defaults.
//
// A Registry is built once from the library's built-in defaults plus
// caller-supplied options (optionally loaded from a config file), then frozen.
// The static tables never change after construction; the only mutation the
// registry supports afterwards is Define, a runtime overlay for
// dynamically-discovered error kinds, which takes the highest resolution
// priority and is guarded by a mutex so the registry stays safe under
// concurrent use.
package registry
