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

// Package httpapi is the fiber transport: the error-reporting entry point
// for request handlers, the app-level error handler, and the maintenance
// endpoints that expose the policy registry and the simulation harness.
package httpapi

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"

	ultraerr "ultrasuite.dev/ultraerr"
	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/dispatch"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/format"
	"ultrasuite.dev/ultraerr/policy"
	"ultrasuite.dev/ultraerr/registry"
	"ultrasuite.dev/ultraerr/respond"
	"ultrasuite.dev/ultraerr/simulate"
)

// Deps are the collaborators a Server needs. Sessions is optional; without
// it, flash outcomes degrade to thrown exceptions.
type Deps struct {
	Registry   *registry.Registry
	Resolver   apis.Resolver
	Formatter  *format.Formatter
	Dispatcher *dispatch.Dispatcher
	Builder    *respond.Builder
	Simulator  *simulate.Manager
	Sessions   *session.Store
	Log        logrus.FieldLogger
}

// Server wires the error pipeline into fiber.
type Server struct {
	deps Deps
}

// New validates deps and returns a Server.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Registry == nil:
		return nil, errors.New("httpapi: nil registry")
	case deps.Resolver == nil:
		return nil, errors.New("httpapi: nil resolver")
	case deps.Formatter == nil:
		return nil, errors.New("httpapi: nil formatter")
	case deps.Dispatcher == nil:
		return nil, errors.New("httpapi: nil dispatcher")
	case deps.Builder == nil:
		return nil, errors.New("httpapi: nil builder")
	case deps.Simulator == nil:
		return nil, errors.New("httpapi: nil simulator")
	case deps.Log == nil:
		return nil, errors.New("httpapi: nil logger")
	}
	return &Server{deps: deps}, nil
}

// Register mounts the maintenance endpoints on r.
func (s *Server) Register(r fiber.Router) {
	errs := r.Group("/api/errors")
	errs.Get("/config", s.handleConfig)
	errs.Get("/codes", s.handleCodes)

	sim := errs.Group("/simulate")
	sim.Get("/", s.handleSimulateList)
	sim.Post("/reset", s.handleSimulateReset)
	sim.Post("/:code/activate", s.handleSimulateSet(true))
	sim.Post("/:code/deactivate", s.handleSimulateSet(false))
}

// Report runs the full pipeline for an error raised inside a request
// handler: resolve the code, render the message, dispatch the handlers,
// then apply the transport decision. A nil return means the response was
// written (JSON) or the request may continue (flash); a non-nil return is
// the exception for the app-level error handler.
func (s *Server) Report(c *fiber.Ctx, code errcode.Code, ectx map[string]any, cause error) error {
	merged := RequestContext(c)
	for k, v := range ectx {
		merged[k] = v
	}

	res, err := s.deps.Resolver.Resolve(code, merged)
	if err != nil {
		return err
	}
	msg := s.deps.Formatter.Message(res.Effective, res.Config, res.Context)

	rep := apis.Report{
		Code:    res.Effective,
		Config:  res.Config,
		Message: msg,
		Context: res.Context,
		Cause:   cause,
	}
	s.deps.Dispatcher.Dispatch(c.UserContext(), rep)

	var fl apis.Flasher
	if s.deps.Sessions != nil {
		fl = Flasher(s.deps.Sessions, c)
	}
	env, err := s.deps.Builder.Build(Requester(c), fl, respond.Input{
		Code:    res.Effective,
		Config:  res.Config,
		Context: res.Context,
		Message: msg,
		Cause:   cause,
	})
	if err != nil {
		return err
	}
	if env != nil {
		return c.Status(env.Status).JSON(env)
	}
	return nil
}

// ErrorHandler returns the fiber app-level error handler. It writes the
// terminal response for exceptions thrown by the pipeline and funnels
// fiber's own routing errors through the same pipeline first.
func (s *Server) ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ue *ultraerr.Error
		if errors.As(err, &ue) {
			return s.writeException(c, ue)
		}

		code := errcode.GenericServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				code = errcode.PageNotFound
			case fiber.StatusUnauthorized, fiber.StatusForbidden:
				code = errcode.AuthenticationError
			}
		}

		if rerr := s.Report(c, code, nil, err); rerr != nil {
			if errors.As(rerr, &ue) {
				return s.writeException(c, ue)
			}
			s.deps.Log.WithError(rerr).Error("error pipeline failed inside the error handler")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   string(errcode.FatalFallback),
				"message": "error handling failed",
			})
		}
		return nil
	}
}

func (s *Server) writeException(c *fiber.Ctx, ue *ultraerr.Error) error {
	status := ue.HTTPStatus
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	req := Requester(c)
	if req.ExpectsJSON() || req.Is(respond.DefaultAPIPattern) {
		return c.Status(status).JSON(apis.Envelope{
			Error:   string(ue.Code),
			Message: ue.Message,
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(errorPage(status, ue.Message))
}

func errorPage(status int, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Error %d</title></head>
<body><h1>Error %d</h1><p>%s</p></body>
</html>
`, status, status, message)
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	payload := apis.ConfigPayload{
		Errors:         s.deps.Registry.Export(),
		Types:          make(map[string]apis.TypeDefaults),
		BlockingLevels: make(map[string]apis.BlockingDefaults),
	}
	for _, sev := range policy.Severities() {
		if d, ok := s.deps.Registry.TypeDefaults(sev); ok {
			payload.Types[string(sev)] = d
		}
	}
	for _, bl := range policy.BlockingLevels() {
		if d, ok := s.deps.Registry.BlockingDefaults(bl); ok {
			payload.BlockingLevels[string(bl)] = d
		}
	}
	return c.JSON(payload)
}

func (s *Server) handleCodes(c *fiber.Ctx) error {
	var codes []errcode.Code
	if raw := c.Query("type"); raw != "" {
		sev, err := policy.ParseSeverity(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   string(errcode.ValidationError),
				"message": fmt.Sprintf("unknown severity %q", raw),
			})
		}
		codes = s.deps.Registry.KnownByType(sev)
	} else {
		codes = s.deps.Registry.Known()
	}
	return c.JSON(fiber.Map{"codes": codes})
}

func (s *Server) handleSimulateList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"environment": s.deps.Simulator.Environment(),
		"enabled":     s.deps.Simulator.Enabled(),
		"active":      s.deps.Simulator.Active(),
	})
}

func (s *Server) handleSimulateReset(c *fiber.Ctx) error {
	s.deps.Simulator.Reset()
	return c.JSON(fiber.Map{"active": s.deps.Simulator.Active()})
}

func (s *Server) handleSimulateSet(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := errcode.Normalize(c.Params("code"))
		if !s.deps.Registry.Has(code) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   string(errcode.RecordNotFound),
				"message": fmt.Sprintf("unknown error code %s", code),
			})
		}
		s.deps.Simulator.Set(code, active)
		s.deps.Log.WithFields(logrus.Fields{
			"error_code": string(code),
			"active":     active,
		}).Info("testing condition toggled")
		return c.JSON(fiber.Map{
			"code":   code,
			"active": s.deps.Simulator.IsTesting(code),
		})
	}
}
