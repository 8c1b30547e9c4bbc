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

// Package errcode defines the symbolic error-code vocabulary of ultraerr.
//
// A Code is an opaque SCREAMING_SNAKE identifier ("FILE_NOT_FOUND",
// "VIRUS_FOUND"). It never carries behaviour; severity, blocking level,
// display mode and messages are all looked up for it in the policy registry.
// This package only guarantees that codes are well-formed and provides the
// sentinel codes the resolution pipeline reserves for itself.
package errcode
