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
	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

// Signal is a Consent Mode v2 signal value.
type Signal string

const (
	Granted Signal = "granted"
	Denied  Signal = "denied"
)

// Consent Mode v2 signal keys.
const (
	AdStorage              = "ad_storage"
	AdUserData             = "ad_user_data"
	AdPersonalization      = "ad_personalization"
	AnalyticsStorage       = "analytics_storage"
	FunctionalityStorage   = "functionality_storage"
	PersonalizationStorage = "personalization_storage"
	SecurityStorage        = "security_storage"
)

// VendorSignal maps each Consent Mode v2 key to granted or denied.
type VendorSignal map[string]Signal

// ToProviderSignal derives the vendor signal map from the internal settings.
// Each vendor key is driven by exactly one internal flag; security_storage is
// always granted because it covers fraud prevention, not tracking.
func ToProviderSignal(s model.ConsentSettings) VendorSignal {
	return VendorSignal{
		AdStorage:              fromFlag(s.Marketing),
		AdUserData:             fromFlag(s.Marketing),
		AdPersonalization:      fromFlag(s.Marketing),
		AnalyticsStorage:       fromFlag(s.Analytics),
		FunctionalityStorage:   fromFlag(s.Preferences),
		PersonalizationStorage: fromFlag(s.Preferences),
		SecurityStorage:        Granted,
	}
}

// DefaultSignal is the tuple issued before any visitor decision exists:
// every non-essential key denied, essential storage granted.
func DefaultSignal() VendorSignal {
	return ToProviderSignal(model.DefaultSettings())
}

func fromFlag(granted bool) Signal {
	if granted {
		return Granted
	}
	return Denied
}
