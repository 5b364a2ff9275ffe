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

// Side attributes used for exactly-once bookkeeping per blocked element.
const (
	// AttrBlockedSrc holds the original src of a blocked script.
	AttrBlockedSrc = "data-blocked-src"
	// AttrCategory holds the consent category the blocked script requires.
	AttrCategory = "data-consent-category"
)

// ScriptElement is the minimal surface of a script element the gate needs.
type ScriptElement interface {
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	// SetAttr sets the attribute. Assigning src on an interceptable
	// document routes through the installed interceptor.
	SetAttr(name, value string)
	// RemoveAttr removes the attribute if present.
	RemoveAttr(name string)
}

// Document exposes the script elements of a host page.
type Document interface {
	// Scripts returns every script element currently in the document.
	Scripts() []ScriptElement
	// ReplaceScript swaps old for a fresh element carrying src, preserving
	// its other attributes. A fresh element is required because reassigning
	// src on an element that already failed to load does not reliably
	// retrigger a fetch. Returns the replacement.
	ReplaceScript(old ScriptElement, src string) ScriptElement
}

// Interceptor decides whether a src assignment may proceed. Returning false
// means the assignment was captured instead of applied.
type Interceptor func(el ScriptElement, src string) bool

// Interceptable is implemented by documents able to capture src assignments
// made after startup. Hosts that cannot redefine the property simply do not
// implement it (or return an error), and the gate degrades to scan-only.
type Interceptable interface {
	InstallSrcInterceptor(fn Interceptor) error
}
