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

package service

import (
	"encoding/json"
	"sync"
	"time"

	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
	"github.com/wso2/identity-cookie-consent/internal/consent/store"
	"github.com/wso2/identity-cookie-consent/internal/consentmode"
	"github.com/wso2/identity-cookie-consent/internal/export"
	errors2 "github.com/wso2/identity-cookie-consent/internal/system/errors"
	"github.com/wso2/identity-cookie-consent/internal/system/events"
	"github.com/wso2/identity-cookie-consent/internal/system/log"
)

// Subscriber receives a settings snapshot after every committed decision.
type Subscriber func(settings model.ConsentSettings)

// ConsentStore owns the canonical consent state and its persistence
// lifecycle. One instance exists per page; it is constructed at startup and
// passed by reference to the banner and the script gate.
//
// No method ever returns an error to its caller: every failure mode degrades
// to "banner still shown, consent still collectible" with a logged warning.
type ConsentStore struct {
	storage  store.Storage
	bridge   *consentmode.Bridge
	exporter *export.Exporter
	bus      *events.Bus
	unblock  func(settings model.ConsentSettings)

	now func() time.Time

	mu          sync.Mutex
	current     model.ConsentSettings
	state       model.RecordState
	subscribers map[int]Subscriber
	order       []int
	nextID      int
}

// NewConsentStore wires the store to its collaborators. bridge, exporter and
// bus may each be nil; the corresponding side effects are then skipped.
func NewConsentStore(storage store.Storage, bridge *consentmode.Bridge, exporter *export.Exporter, bus *events.Bus) *ConsentStore {
	return &ConsentStore{
		storage:     storage,
		bridge:      bridge,
		exporter:    exporter,
		bus:         bus,
		now:         time.Now,
		current:     model.DefaultSettings(),
		state:       model.NoRecord,
		subscribers: make(map[int]Subscriber),
	}
}

// Load reads the persisted consent decision. Load fails soft: a corrupt
// record is logged, discarded and reported as CorruptRecord exactly once; a
// subsequent Load reports NoRecord. Storage errors are treated as absence.
func (cs *ConsentStore) Load() model.LoadResult {
	logger := log.GetLogger()

	raw, found, err := cs.storage.Get(store.KeyConsentRecord)
	if err != nil {
		logger.Warn("Failed to read the consent record, treating as absent",
			log.Error(errors2.NewServerError(errors2.LOAD_CONSENT_RECORD, err)))
		return cs.setState(model.NoRecord, nil)
	}
	if !found {
		return cs.setState(model.NoRecord, nil)
	}

	var settings model.ConsentSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Warn("Discarding corrupt consent record",
			log.Error(errors2.NewServerError(errors2.CORRUPT_CONSENT_RECORD, err)))
		cs.discard()
		return cs.setState(model.CorruptRecord, nil)
	}

	timestamp, _, err := cs.storage.Get(store.KeyConsentTimestamp)
	if err != nil {
		logger.Warn("Failed to read the consent timestamp",
			log.Error(errors2.NewServerError(errors2.LOAD_CONSENT_RECORD, err)))
	}

	record := &model.ConsentRecord{Settings: settings.Normalize(), Timestamp: timestamp}
	return cs.setState(model.ValidRecord, record)
}

// Save persists the decision and fans it out in fixed order: durable write,
// provider signal, external action log, script unblock, subscriber
// snapshots, then the global consentUpdated notification. Unblocking runs
// before any observer so a consentUpdated listener inspecting the document
// already sees the consented scripts restored. When the durable write fails
// the in-memory value still advances optimistically; a later reload will
// show the banner again, which is the documented degradation.
func (cs *ConsentStore) Save(settings model.ConsentSettings, action model.Action) {
	logger := log.GetLogger()
	settings = settings.Normalize()
	timestamp := cs.now().UTC().Format(time.RFC3339)

	raw, err := json.Marshal(settings)
	if err != nil {
		// Cannot happen for a flat boolean struct, but never panic the host page.
		logger.Error("Failed to encode consent settings", log.Error(err))
		return
	}
	if err := cs.storage.Set(store.KeyConsentRecord, string(raw)); err != nil {
		logger.Warn("Failed to persist the consent record, continuing in memory",
			log.Error(errors2.NewServerError(errors2.SAVE_CONSENT_RECORD, err)))
	} else if err := cs.storage.Set(store.KeyConsentTimestamp, timestamp); err != nil {
		logger.Warn("Failed to persist the consent timestamp",
			log.Error(errors2.NewServerError(errors2.SAVE_CONSENT_RECORD, err)))
	}

	cs.mu.Lock()
	cs.current = settings
	cs.state = model.ValidRecord
	cs.mu.Unlock()

	logger.Audit(log.AuditEvent{
		ActionID: log.ActionSaveConsent,
		Data:     map[string]interface{}{"consent_action": string(action)},
	})

	cs.bridge.Emit(settings, action)
	cs.exporter.Export(settings, action, timestamp)
	if cs.unblock != nil {
		cs.unblock(settings)
	}
	cs.notify(settings)
	cs.bus.Dispatch(events.ConsentUpdated, events.ConsentUpdate{Settings: settings, Action: action})
}

// Reset deletes the persisted record and returns the in-memory state to
// unset. It notifies subscribers and dispatches consentReset, but issues no
// provider signal; the default-denied tuple is only re-issued by the next
// InitializeDefault.
func (cs *ConsentStore) Reset() {
	cs.discard()

	cs.mu.Lock()
	cs.current = model.DefaultSettings()
	cs.state = model.NoRecord
	cs.mu.Unlock()

	log.GetLogger().Audit(log.AuditEvent{ActionID: log.ActionResetConsent})

	cs.notify(model.DefaultSettings())
	cs.bus.Dispatch(events.ConsentReset, nil)
}

// BindUnblock registers the script gate hook invoked by Save after the
// provider signal and before subscriber notification.
func (cs *ConsentStore) BindUnblock(fn func(settings model.ConsentSettings)) {
	cs.unblock = fn
}

// Subscribe registers a listener invoked with a settings snapshot after
// every committed decision. The returned function removes the listener and
// is idempotent.
func (cs *ConsentStore) Subscribe(fn Subscriber) func() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	id := cs.nextID
	cs.nextID++
	cs.subscribers[id] = fn
	cs.order = append(cs.order, id)

	return func() {
		cs.mu.Lock()
		defer cs.mu.Unlock()
		delete(cs.subscribers, id)
		for i, v := range cs.order {
			if v == id {
				cs.order = append(cs.order[:i], cs.order[i+1:]...)
				break
			}
		}
	}
}

// InitializeDefault issues the provider's default-denied tuple and, when a
// valid record already exists, immediately follows it with the stored
// decision so the provider converges on the visitor's last choice.
func (cs *ConsentStore) InitializeDefault() {
	cs.bridge.Default()

	cs.mu.Lock()
	state, current := cs.state, cs.current
	cs.mu.Unlock()

	if state == model.ValidRecord {
		cs.bridge.Emit(current, model.DeriveAction(current))
	}
}

// Current returns a snapshot of the in-memory settings.
func (cs *ConsentStore) Current() model.ConsentSettings {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.current
}

// State returns the last observed record state.
func (cs *ConsentStore) State() model.RecordState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state
}

func (cs *ConsentStore) setState(state model.RecordState, record *model.ConsentRecord) model.LoadResult {
	cs.mu.Lock()
	cs.state = state
	if record != nil {
		cs.current = record.Settings
	} else {
		cs.current = model.DefaultSettings()
	}
	cs.mu.Unlock()
	return model.LoadResult{State: state, Record: record}
}

func (cs *ConsentStore) discard() {
	logger := log.GetLogger()
	if err := cs.storage.Delete(store.KeyConsentRecord); err != nil {
		logger.Warn("Failed to delete the consent record",
			log.Error(errors2.NewServerError(errors2.DELETE_CONSENT_RECORD, err)))
	}
	if err := cs.storage.Delete(store.KeyConsentTimestamp); err != nil {
		logger.Warn("Failed to delete the consent timestamp",
			log.Error(errors2.NewServerError(errors2.DELETE_CONSENT_RECORD, err)))
	}
}

func (cs *ConsentStore) notify(settings model.ConsentSettings) {
	cs.mu.Lock()
	var fns []Subscriber
	for _, id := range cs.order {
		if fn, ok := cs.subscribers[id]; ok {
			fns = append(fns, fn)
		}
	}
	cs.mu.Unlock()

	for _, fn := range fns {
		fn(settings)
	}
}
