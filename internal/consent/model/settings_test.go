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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAction(t *testing.T) {
	tests := []struct {
		name     string
		settings ConsentSettings
		expected Action
	}{
		{"all granted", ConsentSettings{Necessary: true, Analytics: true, Marketing: true, Preferences: true}, ActionAcceptAll},
		{"all denied", ConsentSettings{Necessary: true}, ActionRejectAll},
		{"analytics only", ConsentSettings{Necessary: true, Analytics: true}, ActionCustom},
		{"marketing only", ConsentSettings{Necessary: true, Marketing: true}, ActionCustom},
		{"preferences only", ConsentSettings{Necessary: true, Preferences: true}, ActionCustom},
		{"two of three", ConsentSettings{Necessary: true, Analytics: true, Preferences: true}, ActionCustom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveAction(tc.settings))
		})
	}
}

func TestDeriveAction_IgnoresNecessaryFlag(t *testing.T) {
	// The necessary flag never influences the label.
	all := ConsentSettings{Analytics: true, Marketing: true, Preferences: true}
	assert.Equal(t, ActionAcceptAll, DeriveAction(all))
	assert.Equal(t, ActionRejectAll, DeriveAction(ConsentSettings{}))
}

func TestNormalize_ForcesNecessary(t *testing.T) {
	s := ConsentSettings{Analytics: true}
	normalized := s.Normalize()
	assert.True(t, normalized.Necessary)
	assert.True(t, normalized.Analytics)

	assert.True(t, DefaultSettings().Necessary)
	assert.True(t, AcceptAllSettings().Necessary)
}

func TestAllows(t *testing.T) {
	s := ConsentSettings{Necessary: true, Analytics: true}
	assert.True(t, s.Allows(CategoryNecessary))
	assert.True(t, s.Allows(CategoryAnalytics))
	assert.False(t, s.Allows(CategoryMarketing))
	assert.False(t, s.Allows(CategoryPreferences))
	assert.False(t, s.Allows("unknown"))

	// necessary is consented even on the zero value.
	assert.True(t, ConsentSettings{}.Allows(CategoryNecessary))
}

func TestRecordStateString(t *testing.T) {
	assert.Equal(t, "no_record", NoRecord.String())
	assert.Equal(t, "valid_record", ValidRecord.String())
	assert.Equal(t, "corrupt_record", CorruptRecord.String())
}
