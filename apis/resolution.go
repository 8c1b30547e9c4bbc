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

package apis

import "ultrasuite.dev/ultraerr/errcode"

// Source identifies which tier of the priority chain produced a resolution.
// Ordered from most to least specific: defined, static, undefined, fallback.
type Source string

const (
	// SourceDefined means a runtime-defined entry for the code itself won.
	SourceDefined Source = "defined"

	// SourceStatic means the static policy table had an entry for the code.
	SourceStatic Source = "static"

	// SourceUndefined means the sentinel UNDEFINED_ERROR_CODE entry was used.
	SourceUndefined Source = "undefined"

	// SourceFallback means the single global FALLBACK_ERROR entry was used.
	SourceFallback Source = "fallback"
)

// Resolution is the outcome of resolving a symbolic code against the policy
// registry. It is always usable: Config is materialized (no zero
// classification fields), and Context carries "_original_code" whenever a
// fallback tier answered.
type Resolution struct {
	// Requested is the code as reported by the caller.
	Requested errcode.Code

	// Effective is the code whose policy entry actually answered. It equals
	// Requested for the defined and static tiers and names the sentinel
	// entry otherwise.
	Effective errcode.Code

	Config  Config
	Context map[string]any
	Source  Source
}

// Resolver turns a symbolic code into an effective policy Resolution.
// Implementations never return an unusable resolution: the only error ever
// returned is the fatal carrier raised when the global fallback entry itself
// is missing.
type Resolver interface {
	Resolve(c errcode.Code, ectx map[string]any) (Resolution, error)
}
