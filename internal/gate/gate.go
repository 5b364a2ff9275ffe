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

package gate

import (
	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
	errors2 "github.com/wso2/identity-cookie-consent/internal/system/errors"
	"github.com/wso2/identity-cookie-consent/internal/system/log"
)

// Mode reports which blocking strategy is active.
type Mode int

const (
	// ModeIntercepting captures src assignments made after startup.
	ModeIntercepting Mode = iota
	// ModeScanOnly only sweeps scripts present at startup. Entered when the
	// host document cannot support interception; a documented degradation.
	ModeScanOnly
)

func (m Mode) String() string {
	if m == ModeScanOnly {
		return "scan_only"
	}
	return "intercepting"
}

// ScriptGate suppresses network loads of denylisted third-party scripts
// until their category is consented, and restores them once it is, without
// a page refresh.
type ScriptGate struct {
	doc     Document
	rules   ruleSet
	current func() model.ConsentSettings

	installed bool
	mode      Mode
}

// NewScriptGate builds a gate over doc. rules may be nil to use the built-in
// table. current supplies the consent state consulted on every decision.
func NewScriptGate(doc Document, rules []DomainRule, current func() model.ConsentSettings) *ScriptGate {
	if current == nil {
		current = model.DefaultSettings
	}
	return &ScriptGate{
		doc:     doc,
		rules:   newRuleSet(rules),
		current: current,
		mode:    ModeScanOnly,
	}
}

// Install sweeps the scripts already present in the document and, when the
// document supports it, installs the src interceptor for scripts created
// afterwards. Install is idempotent; a second call returns the active mode
// without side effects.
func (g *ScriptGate) Install() Mode {
	if g.installed {
		return g.mode
	}
	g.installed = true

	for _, el := range g.doc.Scripts() {
		g.sweep(el)
	}

	logger := log.GetLogger()
	ic, ok := g.doc.(Interceptable)
	if !ok {
		logger.Warn("Host document does not support src interception, running scan-only")
		g.mode = ModeScanOnly
		return g.mode
	}
	if err := ic.InstallSrcInterceptor(g.intercept); err != nil {
		logger.Warn("Failed to install src interceptor, running scan-only",
			log.Error(errors2.NewServerError(errors2.INSTALL_INTERCEPTOR, err)))
		g.mode = ModeScanOnly
		return g.mode
	}
	g.mode = ModeIntercepting
	return g.mode
}

// Mode returns the active blocking strategy.
func (g *ScriptGate) Mode() Mode {
	return g.mode
}

// Unblock re-evaluates every blocked element against settings. Elements
// whose category is now consented are replaced by fresh elements carrying
// the original src; the rest are left untouched.
func (g *ScriptGate) Unblock(settings model.ConsentSettings) {
	logger := log.GetLogger()
	for _, el := range g.doc.Scripts() {
		src, ok := el.Attr(AttrBlockedSrc)
		if !ok {
			continue
		}
		category, ok := el.Attr(AttrCategory)
		if !ok {
			category, _ = g.rules.requiredCategory(src)
		}
		if !settings.Allows(category) {
			continue
		}
		el.RemoveAttr(AttrBlockedSrc)
		el.RemoveAttr(AttrCategory)
		g.doc.ReplaceScript(el, src)
		logger.Audit(log.AuditEvent{
			ActionID: log.ActionRestoreScript,
			Data:     map[string]interface{}{"src": src, "category": category},
		})
	}
}

// sweep handles a script already carrying a src at startup: a denied source
// is moved onto the side attribute so it can be restored later.
func (g *ScriptGate) sweep(el ScriptElement) {
	src, ok := el.Attr("src")
	if !ok || src == "" {
		return
	}
	category, ok := g.rules.requiredCategory(src)
	if !ok || g.current().Allows(category) {
		return
	}
	if _, blocked := el.Attr(AttrBlockedSrc); blocked {
		return // already blocked, never double-record
	}
	el.RemoveAttr("src")
	el.SetAttr(AttrBlockedSrc, src)
	el.SetAttr(AttrCategory, category)
	log.GetLogger().Audit(log.AuditEvent{
		ActionID: log.ActionBlockScript,
		Data:     map[string]interface{}{"src": src, "category": category},
	})
}

// intercept is the installed Interceptor: permitted assignments pass
// through unchanged, denied ones are captured on the side attributes.
func (g *ScriptGate) intercept(el ScriptElement, src string) bool {
	category, ok := g.rules.requiredCategory(src)
	if !ok || g.current().Allows(category) {
		return true
	}
	el.SetAttr(AttrBlockedSrc, src)
	el.SetAttr(AttrCategory, category)
	log.GetLogger().Audit(log.AuditEvent{
		ActionID: log.ActionBlockScript,
		Data:     map[string]interface{}{"src": src, "category": category},
	})
	return false
}
