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

package model

// Consent category keys. These are the unit of granularity for a visitor's
// choice and are shared by the cookie classifier and the script gate.
const (
	CategoryNecessary   = "necessary"
	CategoryAnalytics   = "analytics"
	CategoryMarketing   = "marketing"
	CategoryPreferences = "preferences"
)

// Action is the canonical label describing how a consent decision was made.
type Action string

const (
	ActionAcceptAll Action = "accept_all"
	ActionRejectAll Action = "reject_all"
	ActionCustom    Action = "custom_selection"
)

// ConsentSettings holds the visitor's choice per consent category. The
// necessary category is immutable and always granted.
type ConsentSettings struct {
	Necessary   bool `json:"necessary"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Preferences bool `json:"preferences"`
}

// DefaultSettings returns the unset state: only necessary is granted.
func DefaultSettings() ConsentSettings {
	return ConsentSettings{Necessary: true}
}

// AcceptAllSettings returns settings with every category granted.
func AcceptAllSettings() ConsentSettings {
	return ConsentSettings{Necessary: true, Analytics: true, Marketing: true, Preferences: true}
}

// Normalize forces the necessary invariant and returns the corrected value.
// Every settings value entering or leaving the store passes through here so
// that necessary is never observably false.
func (s ConsentSettings) Normalize() ConsentSettings {
	s.Necessary = true
	return s
}

// Allows reports whether the given category key is consented. Unknown keys
// are never consented.
func (s ConsentSettings) Allows(category string) bool {
	switch category {
	case CategoryNecessary:
		return true
	case CategoryAnalytics:
		return s.Analytics
	case CategoryMarketing:
		return s.Marketing
	case CategoryPreferences:
		return s.Preferences
	default:
		return false
	}
}

// DeriveAction maps a settings value to its canonical action label. UI code
// must use this instead of hand-labelling actions so a label can never
// disagree with the settings it describes.
func DeriveAction(s ConsentSettings) Action {
	granted := 0
	for _, flag := range []bool{s.Analytics, s.Marketing, s.Preferences} {
		if flag {
			granted++
		}
	}
	switch granted {
	case 3:
		return ActionAcceptAll
	case 0:
		return ActionRejectAll
	default:
		return ActionCustom
	}
}
