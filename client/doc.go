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

// Package client mirrors the server-side error pipeline for processes
// that consume the policy over HTTP: it fetches the exported config once,
// resolves and formats errors locally, and publishes display events on an
// in-process bus. When the config endpoint is unreachable a minimal
// built-in policy keeps error handling alive.
package client
