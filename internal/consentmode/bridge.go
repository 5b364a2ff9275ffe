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

package consentmode

import (
	"sync"
	"time"

	"github.com/google/uuid"
	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

// Consent command names pushed to the data layer.
const (
	CommandDefault = "default"
	CommandUpdate  = "update"
)

// Event is one structured entry appended to the host page's analytics event
// queue.
type Event struct {
	ID            string       `json:"event_id"`
	Name          string       `json:"event"`
	Command       string       `json:"consent_command"`
	Action        model.Action `json:"consent_action,omitempty"`
	Signal        VendorSignal `json:"consent"`
	WaitForUpdate int          `json:"wait_for_update,omitempty"`
	Timestamp     string       `json:"timestamp"`
}

// DataLayer is the append-only event queue of the host page. The bridge only
// ever appends; it never reads or clears the queue.
type DataLayer interface {
	Push(event Event)
}

// Queue is an in-memory append-only DataLayer.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends the event.
func (q *Queue) Push(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, event)
}

// Snapshot returns a copy of the queued events.
func (q *Queue) Snapshot() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Event, len(q.events))
	copy(out, q.events)
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Bridge maps consent settings to the vendor signaling vocabulary and emits
// structured events to the data layer. It holds no consent state of its own.
// A nil Bridge, or a Bridge without a data layer, is a valid no-op: absence
// of the host signaling function is tolerated, never an error.
type Bridge struct {
	layer DataLayer

	// waitForUpdate is the protocol-imposed budget (milliseconds) the
	// provider waits for a consent update after the default signal.
	waitForUpdate int

	now   func() time.Time
	newID func() string
}

// NewBridge returns a bridge that appends to layer. layer may be nil.
func NewBridge(layer DataLayer, waitForUpdateMs int) *Bridge {
	return &Bridge{
		layer:         layer,
		waitForUpdate: waitForUpdateMs,
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
}

// Default pushes the default-denied signal tuple with the wait_for_update
// budget. Issued once at boot, before any visitor decision is known.
func (b *Bridge) Default() {
	if b == nil || b.layer == nil {
		return
	}
	b.layer.Push(Event{
		ID:            b.newID(),
		Name:          "consent_default",
		Command:       CommandDefault,
		Signal:        DefaultSignal(),
		WaitForUpdate: b.waitForUpdate,
		Timestamp:     b.now().UTC().Format(time.RFC3339),
	})
}

// Emit pushes one consent update event carrying the action label and the
// derived vendor signal.
func (b *Bridge) Emit(settings model.ConsentSettings, action model.Action) {
	if b == nil || b.layer == nil {
		return
	}
	b.layer.Push(Event{
		ID:        b.newID(),
		Name:      "consent_update",
		Command:   CommandUpdate,
		Action:    action,
		Signal:    ToProviderSignal(settings),
		Timestamp: b.now().UTC().Format(time.RFC3339),
	})
}
