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

package banner

import (
	"time"

	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
	"github.com/wso2/identity-cookie-consent/internal/consent/service"
	cookies "github.com/wso2/identity-cookie-consent/internal/cookies/service"
	"github.com/wso2/identity-cookie-consent/internal/gate"
)

// State of the banner presentation machine.
type State int

const (
	StateHidden State = iota
	StateMain
	StateSettings
	StateMinimized
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateSettings:
		return "settings"
	case StateMinimized:
		return "minimized"
	default:
		return "hidden"
	}
}

// Tab identifies a settings panel tab.
type Tab string

const (
	TabConsent Tab = "consent"
	TabDetails Tab = "details"
	TabAbout   Tab = "about"
)

// Controller is the banner's presentation state machine. It is the only
// component that mutates the consent store, and it triggers script
// unblocking on every resolving action.
type Controller struct {
	store   *service.ConsentStore
	gate    *gate.ScriptGate
	scanner *cookies.Scanner
	jar     func() string

	// delay is the cosmetic pause between resolving and minimizing. It is
	// an affordance, not a correctness requirement; tests run with zero.
	delay time.Duration
	sleep func(time.Duration)

	state   State
	lastTab Tab
	draft   *model.ConsentSettings
}

// NewController wires the banner to its collaborators. gate and scanner may
// be nil; jar supplies the raw cookie header for the details tab. The gate
// is bound to the store so a committed decision restores scripts before any
// consentUpdated observer runs.
func NewController(store *service.ConsentStore, scriptGate *gate.ScriptGate, scanner *cookies.Scanner, jar func() string, delay time.Duration) *Controller {
	if jar == nil {
		jar = func() string { return "" }
	}
	if scriptGate != nil {
		store.BindUnblock(scriptGate.Unblock)
	}
	return &Controller{
		store:   store,
		gate:    scriptGate,
		scanner: scanner,
		jar:     jar,
		delay:   delay,
		sleep:   time.Sleep,
		state:   StateHidden,
		lastTab: TabConsent,
	}
}

// Boot loads the persisted record, issues the provider default signal and
// decides the initial state: absent or corrupt record shows the banner,
// a valid record starts minimized with consented scripts restored.
func (c *Controller) Boot() State {
	result := c.store.Load()
	c.store.InitializeDefault()

	switch result.State {
	case model.ValidRecord:
		if c.gate != nil {
			c.gate.Unblock(result.Record.Settings)
		}
		c.state = StateMinimized
	case model.NoRecord, model.CorruptRecord:
		c.state = StateMain
	}
	return c.state
}

// State returns the current presentation state.
func (c *Controller) State() State {
	return c.state
}

// ActiveTab returns the tab shown while in settings.
func (c *Controller) ActiveTab() Tab {
	return c.lastTab
}

// Reopen forces the banner back to its main view regardless of persisted
// consent. Public affordance for "show banner again".
func (c *Controller) Reopen() {
	c.state = StateMain
}

// OpenSettings moves from the main view into the settings panel, seeding
// the pending draft from the current settings.
func (c *Controller) OpenSettings() {
	if c.state != StateMain && c.state != StateMinimized {
		return
	}
	draft := c.store.Current()
	c.draft = &draft
	c.state = StateSettings
}

// SelectTab switches the settings tab. Tab navigation never mutates
// consent.
func (c *Controller) SelectTab(tab Tab) {
	if c.state != StateSettings {
		return
	}
	switch tab {
	case TabConsent, TabDetails, TabAbout:
		c.lastTab = tab
	}
}

// DetailsSummary scans the live cookie jar for the details tab. The result
// is informational only and never mutates consent.
func (c *Controller) DetailsSummary() cookies.Summary {
	if c.scanner == nil {
		return cookies.Summary{Counts: map[string]int{}, CookiesByCategory: map[string][]string{}}
	}
	return c.scanner.Scan(c.jar())
}

// Toggle flips one category on the pending draft. Toggling necessary is a
// no-op, not an error. Toggles outside the settings panel are ignored.
func (c *Controller) Toggle(category string) {
	if c.state != StateSettings || c.draft == nil {
		return
	}
	switch category {
	case model.CategoryAnalytics:
		c.draft.Analytics = !c.draft.Analytics
	case model.CategoryMarketing:
		c.draft.Marketing = !c.draft.Marketing
	case model.CategoryPreferences:
		c.draft.Preferences = !c.draft.Preferences
	}
}

// Draft returns a copy of the pending draft, or nil outside settings.
func (c *Controller) Draft() *model.ConsentSettings {
	if c.draft == nil {
		return nil
	}
	draft := *c.draft
	return &draft
}

// DismissSettings discards the pending draft without committing it.
func (c *Controller) DismissSettings() {
	if c.state != StateSettings {
		return
	}
	c.draft = nil
	c.state = StateMain
}

// AcceptAll resolves the banner with every category granted.
func (c *Controller) AcceptAll() {
	c.resolve(model.AcceptAllSettings())
}

// RejectAll resolves the banner with every optional category denied. The
// rejection is an explicit consent record, logged as reject_all.
func (c *Controller) RejectAll() {
	c.resolve(model.DefaultSettings())
}

// SaveCustom commits the pending draft. Ignored when no draft exists.
func (c *Controller) SaveCustom() {
	if c.state != StateSettings || c.draft == nil {
		return
	}
	c.resolve(*c.draft)
}

// Reset clears the persisted record and any pending draft and shows the
// banner again. A reset always wins over a pending toggle.
func (c *Controller) Reset() {
	c.draft = nil
	c.store.Reset()
	c.state = StateMain
}

// resolve commits a decision. Save covers the fixed persistence, signaling
// and unblock order; the controller adds the cosmetic delay and the
// minimized state.
func (c *Controller) resolve(settings model.ConsentSettings) {
	settings = settings.Normalize()
	c.store.Save(settings, model.DeriveAction(settings))
	c.draft = nil
	if c.delay > 0 {
		c.sleep(c.delay)
	}
	c.state = StateMinimized
}
