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

// Command ultraerrd serves the error-policy registry over HTTP: the
// config export consumed by clients, the simulation endpoints, and the
// full handling pipeline for errors raised by the demo routes.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"ultrasuite.dev/ultraerr/dispatch"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/format"
	"ultrasuite.dev/ultraerr/handlers"
	"ultrasuite.dev/ultraerr/httpapi"
	"ultrasuite.dev/ultraerr/registry"
	"ultrasuite.dev/ultraerr/resolve"
	"ultrasuite.dev/ultraerr/respond"
	"ultrasuite.dev/ultraerr/simulate"
	"ultrasuite.dev/ultraerr/translate"
)

func main() {
	v := viper.New()
	v.SetEnvPrefix("ULTRAERR")
	v.AutomaticEnv()
	v.SetDefault("listen", ":8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("sqlite_path", "ultraerr.db")

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(v.GetString("log_level")); err == nil {
		log.SetLevel(lvl)
	}

	var regOpts []registry.Option
	if path := v.GetString("policy_file"); path != "" {
		opts, err := registry.LoadFile(path)
		if err != nil {
			log.WithError(err).Fatal("loading policy file failed")
		}
		regOpts = opts
		log.WithField("path", path).Info("policy file loaded")
	}
	reg, err := registry.New(regOpts...)
	if err != nil {
		log.WithError(err).Fatal("building policy registry failed")
	}

	store, err := handlers.OpenStore(v.GetString("sqlite_path"))
	if err != nil {
		log.WithError(err).Fatal("opening occurrence store failed")
	}
	defer store.Close()

	disp := dispatch.New(log)
	disp.Register(handlers.NewLog(log))
	disp.Register(handlers.NewPersist(store))

	sessions := session.New()
	sim := simulate.New(v.GetString("env"))

	srv, err := httpapi.New(httpapi.Deps{
		Registry:   reg,
		Resolver:   resolve.New(reg, log),
		Formatter:  format.New(translate.Builtin(), log),
		Dispatcher: disp,
		Builder:    respond.New(log, respond.WithBlockingDefaults(reg.BlockingDefaults)),
		Simulator:  sim,
		Sessions:   sessions,
		Log:        log,
	})
	if err != nil {
		log.WithError(err).Fatal("assembling the error pipeline failed")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          srv.ErrorHandler(),
		DisableStartupMessage: true,
	})
	srv.Register(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Demo route: fails when its testing condition is active, so the whole
	// pipeline can be exercised end to end from a browser or curl.
	app.Get("/api/demo/upload", func(c *fiber.Ctx) error {
		if sim.IsTesting(errcode.UploadFailed) {
			return srv.Report(c, errcode.UploadFailed, map[string]any{
				"filename": c.Query("filename", "demo.txt"),
			}, nil)
		}
		return c.JSON(fiber.Map{"uploaded": true})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	addr := v.GetString("listen")
	log.WithFields(logrus.Fields{
		"addr": addr,
		"env":  sim.Environment(),
	}).Info("ultraerrd listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
