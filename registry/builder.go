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

package registry

import (
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

// builder accumulates option mutations before the registry is frozen.
type builder struct {
	errors   map[errcode.Code]apis.Config
	types    map[policy.Severity]apis.TypeDefaults
	blocking map[policy.Blocking]apis.BlockingDefaults
	builtins bool

	errs []error
}

func newBuilder() *builder {
	return &builder{
		errors:   make(map[errcode.Code]apis.Config),
		types:    make(map[policy.Severity]apis.TypeDefaults),
		blocking: make(map[policy.Blocking]apis.BlockingDefaults),
		builtins: true,
	}
}

func (b *builder) addError(c errcode.Code, cfg apis.Config) {
	if err := c.Validate(); err != nil {
		b.errs = append(b.errs, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		b.errs = append(b.errs, err)
		return
	}
	b.errors[c] = cfg
}
