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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/dispatch"
	"ultrasuite.dev/ultraerr/format"
	"ultrasuite.dev/ultraerr/registry"
	"ultrasuite.dev/ultraerr/resolve"
	"ultrasuite.dev/ultraerr/respond"
	"ultrasuite.dev/ultraerr/simulate"
	"ultrasuite.dev/ultraerr/translate"
)

func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	reg, err := registry.New()
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	log, _ := logtest.NewNullLogger()
	srv, err := New(Deps{
		Registry:   reg,
		Resolver:   resolve.New(reg, log),
		Formatter:  format.New(translate.Builtin(), log),
		Dispatcher: dispatch.New(log),
		Builder:    respond.New(log, respond.WithBlockingDefaults(reg.BlockingDefaults)),
		Simulator:  simulate.New("testing"),
		Log:        log,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: srv.ErrorHandler()})
	srv.Register(app)
	return app, srv
}

func doReq(t *testing.T, app *fiber.App, method, path string, hdr map[string]string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, body
}

func TestConfigEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doReq(t, app, "GET", "/api/errors/config", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload apis.ConfigPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := payload.Errors["PAGE_NOT_FOUND"]; !ok {
		t.Fatalf("PAGE_NOT_FOUND missing from exported config")
	}
	if _, ok := payload.Types["critical"]; !ok {
		t.Fatalf("type defaults missing from exported config")
	}
	if _, ok := payload.BlockingLevels["blocking"]; !ok {
		t.Fatalf("blocking defaults missing from exported config")
	}
}

func TestCodesEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doReq(t, app, "GET", "/api/errors/codes?type=critical", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Codes []string `json:"codes"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Codes) == 0 {
		t.Fatalf("no critical codes listed")
	}

	resp, _ = doReq(t, app, "GET", "/api/errors/codes?type=bogus", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d for unknown severity", resp.StatusCode)
	}
}

func TestSimulationEndpoints(t *testing.T) {
	app, srv := newTestApp(t)

	resp, _ := doReq(t, app, "POST", "/api/errors/simulate/NO_SUCH_CODE/activate", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d for unknown code", resp.StatusCode)
	}

	resp, _ = doReq(t, app, "POST", "/api/errors/simulate/UPLOAD_FAILED/activate", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("activate status = %d", resp.StatusCode)
	}
	if !srv.deps.Simulator.IsTesting("UPLOAD_FAILED") {
		t.Fatalf("condition not active after activate")
	}

	resp, body := doReq(t, app, "GET", "/api/errors/simulate", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "UPLOAD_FAILED") {
		t.Fatalf("list body = %s", body)
	}

	resp, _ = doReq(t, app, "POST", "/api/errors/simulate/reset", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("reset status = %d", resp.StatusCode)
	}
	if len(srv.deps.Simulator.Active()) != 0 {
		t.Fatalf("conditions survive reset")
	}
}

func TestReportJSONEnvelope(t *testing.T) {
	app, srv := newTestApp(t)
	app.Get("/api/widgets", func(c *fiber.Ctx) error {
		return srv.Report(c, "VALIDATION_ERROR", map[string]any{"field": "name"}, nil)
	})

	resp, body := doReq(t, app, "GET", "/api/widgets", nil)
	if resp.StatusCode != 422 {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	var env apis.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error != "VALIDATION_ERROR" || env.Message == "" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestReportUnknownCodeFallsBack(t *testing.T) {
	app, srv := newTestApp(t)
	app.Get("/api/widgets", func(c *fiber.Ctx) error {
		return srv.Report(c, "TOTALLY_UNKNOWN", nil, nil)
	})

	resp, body := doReq(t, app, "GET", "/api/widgets", nil)
	if resp.StatusCode != 500 {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	var env apis.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error != "UNDEFINED_ERROR_CODE" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestErrorHandlerRouteNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	// Browser traffic gets the HTML error page.
	resp, body := doReq(t, app, "GET", "/nowhere", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(string(body), "<html>") {
		t.Fatalf("body = %s", body)
	}

	// API traffic gets the JSON envelope.
	resp, body = doReq(t, app, "GET", "/nowhere", map[string]string{
		fiber.HeaderAccept: fiber.MIMEApplicationJSON,
	})
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var env apis.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error != "PAGE_NOT_FOUND" {
		t.Fatalf("envelope = %+v", env)
	}
}
