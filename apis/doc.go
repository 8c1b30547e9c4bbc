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

// Package apis defines the public Go-level contracts of the ultraerr engine.
//
// The goal of this package is to provide *small, composable* types and
// interfaces that the other ultraerr packages can depend on without importing
// each other's concrete implementations: the typed policy records the
// registry stores, the transport-safe views (JSON envelope, client event),
// and the capability interfaces the pipeline consumes (handlers, translator,
// request introspection, session flashing, notification sinks).
//
// In other words: this package is the "surface" that HTTP adapters, the gRPC
// interceptor, the client mirror and business logic can target. Concrete
// implementations live in sibling packages; callers should not rely on the
// concrete types.
//
// This package must remain lightweight and should not introduce heavy
// dependencies, so it only contains interfaces and small record/view types.
package apis
