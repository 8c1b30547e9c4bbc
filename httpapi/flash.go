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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"ultrasuite.dev/ultraerr/apis"
)

const (
	flashMessageKey = "ultraerr.flash.message"
	flashModeKey    = "ultraerr.flash.display_mode"
)

// sessionFlasher implements apis.Flasher over a fiber session store.
type sessionFlasher struct {
	store *session.Store
	c     *fiber.Ctx
}

// Flasher wraps the session bound to c.
func Flasher(store *session.Store, c *fiber.Ctx) apis.Flasher {
	return &sessionFlasher{store: store, c: c}
}

func (f *sessionFlasher) Flash(message string, cfg apis.Config) error {
	sess, err := f.store.Get(f.c)
	if err != nil {
		return fmt.Errorf("httpapi: session: %w", err)
	}
	sess.Set(flashMessageKey, message)
	sess.Set(flashModeKey, string(cfg.DisplayMode))
	return sess.Save()
}

func (f *sessionFlasher) Clear() error {
	sess, err := f.store.Get(f.c)
	if err != nil {
		return fmt.Errorf("httpapi: session: %w", err)
	}
	return sess.Destroy()
}

// FlashedMessage pops the flashed error message and display mode from the
// session, if one was stored by an earlier request.
func FlashedMessage(store *session.Store, c *fiber.Ctx) (message, mode string, ok bool) {
	sess, err := store.Get(c)
	if err != nil {
		return "", "", false
	}
	msg, _ := sess.Get(flashMessageKey).(string)
	if msg == "" {
		return "", "", false
	}
	mode, _ = sess.Get(flashModeKey).(string)
	sess.Delete(flashMessageKey)
	sess.Delete(flashModeKey)
	_ = sess.Save()
	return msg, mode, true
}
