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

package client

import (
	"sync"

	"ultrasuite.dev/ultraerr/apis"
)

// Event names published on the bus.
const (
	EventName         = "ultraError"
	EventConfigLoaded = "ultraErrorConfigLoaded"
)

// Bus is a minimal in-process event bus. Publish runs subscribers
// synchronously on the publishing goroutine.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]func(apis.Event)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]func(apis.Event))}
}

// Subscribe registers fn for events named name and returns a cancel
// function.
func (b *Bus) Subscribe(name string, fn func(apis.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[name] == nil {
		b.subs[name] = make(map[int]func(apis.Event))
	}
	id := b.next
	b.next++
	b.subs[name][id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs[name], id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to every subscriber of its name.
func (b *Bus) Publish(ev apis.Event) {
	b.mu.RLock()
	fns := make([]func(apis.Event), 0, len(b.subs[ev.Name]))
	for _, fn := range b.subs[ev.Name] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}
