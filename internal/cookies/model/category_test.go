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
	"github.com/stretchr/testify/require"

	consent "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func findCategory(t *testing.T, categories []Category, key string) Category {
	t.Helper()
	for _, cat := range categories {
		if cat.Key == key {
			return cat
		}
	}
	t.Fatalf("category %q not found", key)
	return Category{}
}

func TestDefaultCategories_HaveExactlyOneFallback(t *testing.T) {
	fallbacks := 0
	for _, cat := range DefaultCategories() {
		if cat.IsFallback {
			fallbacks++
			assert.Equal(t, FallbackKey, cat.Key)
		}
	}
	assert.Equal(t, 1, fallbacks)
}

func TestMerge_OverrideReplacesPresentFields(t *testing.T) {
	merged := Merge(DefaultCategories(), map[string]Override{
		consent.CategoryAnalytics: {
			Label:    strPtr("Statistics"),
			Patterns: []string{"_pk_*"},
		},
	})

	analytics := findCategory(t, merged, consent.CategoryAnalytics)
	assert.Equal(t, "Statistics", analytics.Label)
	assert.Equal(t, []string{"_pk_*"}, analytics.Patterns)
	// show_in_details was absent from the override and is inherited.
	assert.True(t, analytics.ShowInDetails)
}

func TestMerge_OverrideInheritsAbsentFields(t *testing.T) {
	defaults := DefaultCategories()
	merged := Merge(defaults, map[string]Override{
		consent.CategoryMarketing: {ShowInDetails: boolPtr(false)},
	})

	marketing := findCategory(t, merged, consent.CategoryMarketing)
	assert.False(t, marketing.ShowInDetails)
	assert.Equal(t, findCategory(t, defaults, consent.CategoryMarketing).Patterns, marketing.Patterns)
	assert.Equal(t, "Marketing", marketing.Label)
}

func TestMerge_UnknownKeysAppendAsNewCategories(t *testing.T) {
	merged := Merge(DefaultCategories(), map[string]Override{
		"social": {Patterns: []string{"sb", "datr"}},
	})

	social := findCategory(t, merged, "social")
	assert.Equal(t, "social", social.Label)
	assert.Equal(t, []string{"sb", "datr"}, social.Patterns)
	assert.False(t, social.IsFallback)
}

func TestMerge_FallbackSurvivesOverride(t *testing.T) {
	merged := Merge(DefaultCategories(), map[string]Override{
		FallbackKey: {Label: strPtr("Other")},
	})

	fallback := findCategory(t, merged, FallbackKey)
	assert.Equal(t, "Other", fallback.Label)
	assert.True(t, fallback.IsFallback)
}

func TestMerge_InjectsFallbackWhenMissing(t *testing.T) {
	custom := []Category{
		{Key: consent.CategoryAnalytics, Label: "Analytics", Patterns: []string{"_ga"}},
	}
	merged := Merge(custom, nil)

	fallback := findCategory(t, merged, FallbackKey)
	require.True(t, fallback.IsFallback)
	assert.Equal(t, FallbackKey, FallbackOf(merged))
}

func TestEnsureFallback_ClearsExtraMarks(t *testing.T) {
	table := []Category{
		{Key: "a", IsFallback: true},
		{Key: "b", IsFallback: true},
	}
	result := EnsureFallback(table)

	assert.True(t, result[0].IsFallback)
	assert.False(t, result[1].IsFallback)
	assert.Equal(t, "a", FallbackOf(result))
}

func TestEnsureFallback_NeverMutatesTheInputTable(t *testing.T) {
	shared := []Category{
		{Key: "a", IsFallback: true},
		{Key: "b", IsFallback: true},
	}
	EnsureFallback(shared)

	// A table shared across scanners keeps its marks.
	assert.True(t, shared[0].IsFallback)
	assert.True(t, shared[1].IsFallback)
}
