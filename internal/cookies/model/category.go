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
	"sort"

	consent "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

// FallbackKey is the category assigned to any cookie matching no configured
// pattern.
const FallbackKey = "uncategorized"

// Category describes one cookie category. Patterns are either exact
// case-insensitive names or wildcard strings containing '*'.
type Category struct {
	Key           string   `yaml:"key" json:"key"`
	Label         string   `yaml:"label" json:"label"`
	Patterns      []string `yaml:"patterns" json:"patterns"`
	ShowInDetails bool     `yaml:"show_in_details" json:"show_in_details"`
	IsFallback    bool     `yaml:"-" json:"is_fallback"`
}

// Override replaces individual category fields per key. Fields left nil or
// empty inherit the default. The fallback property itself can never be
// overridden away.
type Override struct {
	Label         *string  `yaml:"label"`
	Patterns      []string `yaml:"patterns"`
	ShowInDetails *bool    `yaml:"show_in_details"`
}

// DefaultCategories is the built-in classification table. It is a
// best-effort static table, not a certified cookie audit.
func DefaultCategories() []Category {
	return []Category{
		{
			Key:   consent.CategoryNecessary,
			Label: "Strictly necessary",
			Patterns: []string{
				"cck_consent",
				"cck_consent_timestamp",
				"PHPSESSID",
				"wordpress_*",
				"wordpress_logged_in_*",
				"wp-postpass_*",
			},
			ShowInDetails: true,
		},
		{
			Key:   consent.CategoryAnalytics,
			Label: "Analytics",
			Patterns: []string{
				"_ga",
				"_ga_*",
				"_gid",
				"_gat",
				"_gat_*",
				"__utm*",
				"_hj*",
				"_clck",
				"_clsk",
			},
			ShowInDetails: true,
		},
		{
			Key:   consent.CategoryMarketing,
			Label: "Marketing",
			Patterns: []string{
				"_fbp",
				"_fbc",
				"fr",
				"IDE",
				"NID",
				"MUID",
				"test_cookie",
				"_gcl_*",
			},
			ShowInDetails: true,
		},
		{
			Key:   consent.CategoryPreferences,
			Label: "Preferences",
			Patterns: []string{
				"wp-settings-*",
				"pll_language",
				"comment_author_*",
			},
			ShowInDetails: true,
		},
		{
			Key:           FallbackKey,
			Label:         "Uncategorized",
			ShowInDetails: true,
			IsFallback:    true,
		},
	}
}

// Merge combines the default table with per-key overrides. Precedence:
// an override replaces label, patterns and show_in_details when present and
// inherits them when absent; override keys unknown to the defaults are
// appended as new non-fallback categories in sorted key order.
//
// Postcondition: exactly one category in the result has IsFallback set. If
// the input table carries none, a default uncategorized fallback is
// appended.
func Merge(defaults []Category, overrides map[string]Override) []Category {
	merged := make([]Category, 0, len(defaults))
	seen := make(map[string]bool, len(defaults))

	for _, cat := range defaults {
		seen[cat.Key] = true
		if ov, ok := overrides[cat.Key]; ok {
			cat = applyOverride(cat, ov)
		}
		merged = append(merged, cat)
	}

	for _, key := range sortedKeys(overrides) {
		if seen[key] {
			continue
		}
		cat := Category{Key: key, Label: key, ShowInDetails: true}
		merged = append(merged, applyOverride(cat, overrides[key]))
	}

	return EnsureFallback(merged)
}

// EnsureFallback enforces the exactly-one-fallback postcondition on a
// category table. Extra fallback marks beyond the first are cleared; a
// missing fallback is injected. The input slice is never mutated; callers
// may share a table across scanners.
func EnsureFallback(categories []Category) []Category {
	found := false
	copied := false
	for i := range categories {
		if !categories[i].IsFallback {
			continue
		}
		if found {
			if !copied {
				categories = append([]Category(nil), categories...)
				copied = true
			}
			categories[i].IsFallback = false
			continue
		}
		found = true
	}
	if !found {
		categories = append(categories, Category{
			Key:           FallbackKey,
			Label:         "Uncategorized",
			ShowInDetails: true,
			IsFallback:    true,
		})
	}
	return categories
}

// FallbackOf returns the key of the fallback category in the table.
func FallbackOf(categories []Category) string {
	for _, cat := range categories {
		if cat.IsFallback {
			return cat.Key
		}
	}
	return FallbackKey
}

func applyOverride(cat Category, ov Override) Category {
	if ov.Label != nil {
		cat.Label = *ov.Label
	}
	if ov.Patterns != nil {
		cat.Patterns = append([]string(nil), ov.Patterns...)
	}
	if ov.ShowInDetails != nil {
		cat.ShowInDetails = *ov.ShowInDetails
	}
	return cat
}

func sortedKeys(overrides map[string]Override) []string {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
