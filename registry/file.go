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
	"fmt"

	"github.com/spf13/viper"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/policy"
)

// LoadFile reads a policy file (JSON, YAML or TOML, decided by extension)
// and converts it into registry options. The file layout mirrors
// apis.ConfigPayload:
//
//	errors:
//	  PAYMENT_DECLINED:
//	    type: error
//	    blocking: semi-blocking
//	types:
//	  error: {log_level: error, notify_team: true, http_status_code: 400}
//	blocking_levels:
//	  blocking: {terminate_request: true}
func LoadFile(path string) ([]Option, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}

	var payload apis.ConfigPayload
	if err := v.Unmarshal(&payload); err != nil {
		return nil, fmt.Errorf("registry: decode %s: %w", path, err)
	}

	var opts []Option
	if len(payload.Errors) > 0 {
		opts = append(opts, WithErrors(payload.Errors))
	}
	for raw, d := range payload.Types {
		s, err := policy.ParseSeverity(raw)
		if err != nil {
			return nil, fmt.Errorf("registry: decode %s: type %q: %w", path, raw, err)
		}
		opts = append(opts, WithTypeDefaults(s, d))
	}
	for raw, d := range payload.BlockingLevels {
		bl, err := policy.ParseBlocking(raw)
		if err != nil {
			return nil, fmt.Errorf("registry: decode %s: blocking level %q: %w", path, raw, err)
		}
		opts = append(opts, WithBlockingDefaults(bl, d))
	}
	return opts, nil
}
