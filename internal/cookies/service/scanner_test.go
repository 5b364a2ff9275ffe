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
	"testing"

	"github.com/stretchr/testify/assert"

	consent "github.com/wso2/identity-cookie-consent/internal/consent/model"
	model "github.com/wso2/identity-cookie-consent/internal/cookies/model"
)

func defaultScanner() *Scanner {
	return NewScanner(model.DefaultCategories())
}

func TestScan_DefaultCategories(t *testing.T) {
	summary := defaultScanner().Scan("_ga=1; cck_consent=2; unknownx=3")

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, map[string]int{
		consent.CategoryAnalytics: 1,
		consent.CategoryNecessary: 1,
		model.FallbackKey:         1,
	}, summary.Counts)
	assert.Equal(t, []string{"_ga"}, summary.CookiesByCategory[consent.CategoryAnalytics])
	assert.Equal(t, []string{"unknownx"}, summary.CookiesByCategory[model.FallbackKey])
}

func TestScan_IsDeterministic(t *testing.T) {
	s := defaultScanner()
	jar := "_ga=1; _fbp=2; wp-settings-3=x; weird=1"

	assert.Equal(t, s.Scan(jar), s.Scan(jar))
}

func TestScan_EmptyJar(t *testing.T) {
	summary := defaultScanner().Scan("")

	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Counts)
}

func TestClassify_WildcardIsAnchored(t *testing.T) {
	s := NewScanner(model.Merge([]model.Category{
		{Key: "prefs", Patterns: []string{"wp-settings-*"}},
	}, nil))

	assert.Equal(t, "prefs", s.Classify("wp-settings-1"))
	assert.Equal(t, "prefs", s.Classify("wp-settings-time-7"))
	// Anchoring: neither a different separator nor a partial match counts.
	assert.Equal(t, model.FallbackKey, s.Classify("wp_settings-1"))
	assert.Equal(t, model.FallbackKey, s.Classify("xwp-settings-1"))
}

func TestClassify_ExactMatchIsExact(t *testing.T) {
	s := NewScanner(model.Merge([]model.Category{
		{Key: "stats", Patterns: []string{"_ga"}},
	}, nil))

	assert.Equal(t, "stats", s.Classify("_ga"))
	assert.Equal(t, "stats", s.Classify("_GA"))
	assert.Equal(t, model.FallbackKey, s.Classify("_gat"))
}

func TestClassify_FirstCategoryInOrderWins(t *testing.T) {
	s := NewScanner(model.Merge([]model.Category{
		{Key: "first", Patterns: []string{"_x*"}},
		{Key: "second", Patterns: []string{"_xy"}},
	}, nil))

	assert.Equal(t, "first", s.Classify("_xy"))
}

func TestParseJar(t *testing.T) {
	tests := []struct {
		name     string
		jar      string
		expected []string
	}{
		{"simple pairs", "a=1; b=2", []string{"a", "b"}},
		{"first equals wins", "a=b=c", []string{"a"}},
		{"valueless cookie kept", "solo; a=1", []string{"solo", "a"}},
		{"url decoded name", "na%3Ame=1", []string{"na:me"}},
		{"bad escape falls back to raw", "bad%zz=1", []string{"bad%zz"}},
		{"blank segments skipped", " ; a=1; ", []string{"a"}},
		{"empty", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseJar(tc.jar))
		})
	}
}
