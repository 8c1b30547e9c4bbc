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

// Package policy defines the closed classification axes of ultraerr.
//
// Severity (critical/error/warning/notice) and Blocking
// (blocking/semi-blocking/not) are independent: severity drives default
// logging and notification behaviour, blocking drives the response shape.
// DisplayMode names how a client surface presents an error. All three are
// small validated string enums so they survive JSON and config files without
// lookup tables.
package policy
