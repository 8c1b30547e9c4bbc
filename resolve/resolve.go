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

// Package resolve turns an error code into a concrete, fully-populated
// policy by walking a fixed priority chain: runtime-defined config, then
// the static table, then the UNDEFINED_ERROR_CODE policy, then the
// FALLBACK_ERROR policy. When even the fallback policy is missing the
// resolver gives up and returns a fatal error, since at that point the
// registry cannot describe any failure at all.
package resolve

import (
	"github.com/sirupsen/logrus"

	ultraerr "ultrasuite.dev/ultraerr"
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/registry"
)

// OriginalCodeKey is the context key under which the originally requested
// code is preserved whenever resolution lands on a sentinel policy.
const OriginalCodeKey = "_original_code"

// Resolver resolves codes against a registry. It implements apis.Resolver.
type Resolver struct {
	reg *registry.Registry
	log logrus.FieldLogger
}

// New returns a Resolver over reg. log must not be nil.
func New(reg *registry.Registry, log logrus.FieldLogger) *Resolver {
	return &Resolver{reg: reg, log: log}
}

// Resolve walks the priority chain for c. The returned resolution carries
// the effective code, its materialized config, and a context map that is
// never nil; when the effective code differs from the requested one the
// original code is recorded under OriginalCodeKey. The input map is never
// mutated.
//
// Resolve only fails when the registry has no config for FALLBACK_ERROR,
// which means the policy store itself is broken.
func (r *Resolver) Resolve(c errcode.Code, ectx map[string]any) (apis.Resolution, error) {
	c = errcode.Normalize(string(c))
	out := cloneContext(ectx)

	if cfg, ok := r.reg.Defined(c); ok {
		resolutionsTotal.WithLabelValues(string(apis.SourceDefined)).Inc()
		return apis.Resolution{
			Requested: c,
			Effective: c,
			Config:    r.reg.Materialize(cfg),
			Context:   out,
			Source:    apis.SourceDefined,
		}, nil
	}
	if cfg, ok := r.reg.Static(c); ok {
		resolutionsTotal.WithLabelValues(string(apis.SourceStatic)).Inc()
		return apis.Resolution{
			Requested: c,
			Effective: c,
			Config:    r.reg.Materialize(cfg),
			Context:   out,
			Source:    apis.SourceStatic,
		}, nil
	}

	out[OriginalCodeKey] = string(c)

	if cfg, ok := r.reg.Lookup(errcode.Undefined); ok {
		r.log.WithFields(logrus.Fields{
			"error_code": string(c),
		}).Warn("error code not found in configuration")
		resolutionsTotal.WithLabelValues(string(apis.SourceUndefined)).Inc()
		return apis.Resolution{
			Requested: c,
			Effective: errcode.Undefined,
			Config:    r.reg.Materialize(cfg),
			Context:   out,
			Source:    apis.SourceUndefined,
		}, nil
	}
	if cfg, ok := r.reg.Lookup(errcode.Fallback); ok {
		r.log.WithFields(logrus.Fields{
			"error_code": string(c),
		}).Error("undefined-code policy missing, using fallback policy")
		resolutionsTotal.WithLabelValues(string(apis.SourceFallback)).Inc()
		return apis.Resolution{
			Requested: c,
			Effective: errcode.Fallback,
			Config:    r.reg.Materialize(cfg),
			Context:   out,
			Source:    apis.SourceFallback,
		}, nil
	}

	r.log.WithFields(logrus.Fields{
		"error_code": string(c),
		"severity":   "critical",
	}).Error("error policy registry has no fallback config")
	resolutionsTotal.WithLabelValues("fatal").Inc()
	return apis.Resolution{}, ultraerr.E(
		errcode.FatalFallback, 500,
		"error handling configuration is missing its fallback entries",
		ultraerr.WithContextOption(OriginalCodeKey, string(c)),
	)
}

// Explain resolves c and reports which chain step produced the config.
// It is a read-only diagnostic wrapper around Resolve.
func (r *Resolver) Explain(c errcode.Code) (apis.Source, error) {
	res, err := r.Resolve(c, nil)
	if err != nil {
		return "", err
	}
	return res.Source, nil
}

func cloneContext(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
