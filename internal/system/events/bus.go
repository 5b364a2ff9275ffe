/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package events

import (
	"sync"

	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

// Global notification names for cross-component observers that hold no
// direct reference to the consent store.
const (
	ConsentUpdated = "consentUpdated"
	ConsentReset   = "consentReset"
)

// ConsentUpdate is the detail payload of a ConsentUpdated notification.
type ConsentUpdate struct {
	Settings model.ConsentSettings
	Action   model.Action
}

// Listener receives the notification detail. The detail is a value snapshot;
// mutating it cannot leak back into the dispatcher.
type Listener func(detail interface{})

// Bus is a named-notification dispatcher. Listeners for a name are invoked
// synchronously in registration order.
type Bus struct {
	mu        sync.Mutex
	listeners map[string]map[int]Listener
	order     map[string][]int
	nextID    int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string]map[int]Listener),
		order:     make(map[string][]int),
	}
}

// Listen registers fn for the named notification and returns its removal
// function. Removing twice is a no-op.
func (b *Bus) Listen(name string, fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners[name] == nil {
		b.listeners[name] = make(map[int]Listener)
	}
	id := b.nextID
	b.nextID++
	b.listeners[name][id] = fn
	b.order[name] = append(b.order[name], id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners[name], id)
		for i, v := range b.order[name] {
			if v == id {
				b.order[name] = append(b.order[name][:i], b.order[name][i+1:]...)
				break
			}
		}
	}
}

// Dispatch invokes every listener registered for name. A nil bus is a valid
// no-op so components may run without cross-script coordination.
func (b *Bus) Dispatch(name string, detail interface{}) {
	if b == nil {
		return
	}
	b.mu.Lock()
	var fns []Listener
	for _, id := range b.order[name] {
		if fn, ok := b.listeners[name][id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(detail)
	}
}
