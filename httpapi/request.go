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

package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ultrasuite.dev/ultraerr/apis"
)

// requester adapts a fiber context to apis.Requester.
type requester struct {
	c *fiber.Ctx
}

// Requester wraps c for the transport decision table.
func Requester(c *fiber.Ctx) apis.Requester {
	return &requester{c: c}
}

func (r *requester) ExpectsJSON() bool {
	if r.c.XHR() {
		return true
	}
	return strings.Contains(r.c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

// Is matches the request path against a slash-separated pattern. A "*"
// segment matches one path segment; a trailing "*" matches the rest.
func (r *requester) Is(pattern string) bool {
	return matchPath(pattern, r.c.Path())
}

func (r *requester) Method() string { return r.c.Method() }
func (r *requester) Path() string   { return r.c.Path() }
func (r *requester) IP() string     { return r.c.IP() }

func (r *requester) UserID() string {
	if v, ok := r.c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}

func matchPath(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ts := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range ps {
		if seg == "*" && i == len(ps)-1 {
			return len(ts) >= i
		}
		if i >= len(ts) {
			return false
		}
		if seg != "*" && seg != ts[i] {
			return false
		}
	}
	return len(ps) == len(ts)
}

// RequestContext collects the request attributes attached to every error
// reported from an HTTP handler.
func RequestContext(c *fiber.Ctx) map[string]any {
	ectx := map[string]any{
		"url":    c.OriginalURL(),
		"method": c.Method(),
		"ip":     c.IP(),
	}
	if v, ok := c.Locals("user_id").(string); ok && v != "" {
		ectx["user_id"] = v
	}
	if v, ok := c.Locals("request_id").(string); ok && v != "" {
		ectx["request_id"] = v
	} else {
		ectx["request_id"] = uuid.NewString()
	}
	return ectx
}
