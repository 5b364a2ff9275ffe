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
	"net/url"
	"regexp"
	"strings"

	model "github.com/wso2/identity-cookie-consent/internal/cookies/model"
)

// Summary is the ephemeral result of one scan of the cookie jar. A fresh
// value is produced per call; it is never persisted and is informational
// only — scanning never mutates consent or the jar.
type Summary struct {
	Total             int                 `json:"total"`
	Counts            map[string]int      `json:"counts"`
	CookiesByCategory map[string][]string `json:"cookies_by_category"`
}

// Scanner classifies live cookie names into categories. Patterns are
// compiled once at construction; for a fixed jar and category table two
// scans produce identical summaries.
type Scanner struct {
	categories []model.Category
	matchers   []matcher
	fallback   string
}

type matcher struct {
	key      string
	exact    []string
	wildcard []*regexp.Regexp
}

// NewScanner compiles the category table. The table is expected to have
// passed model.Merge; a missing fallback is still tolerated by classifying
// unmatched names as model.FallbackKey.
func NewScanner(categories []model.Category) *Scanner {
	s := &Scanner{
		categories: categories,
		fallback:   model.FallbackOf(categories),
	}
	for _, cat := range categories {
		m := matcher{key: cat.Key}
		for _, pattern := range cat.Patterns {
			if strings.Contains(pattern, "*") {
				m.wildcard = append(m.wildcard, compileWildcard(pattern))
			} else {
				m.exact = append(m.exact, pattern)
			}
		}
		s.matchers = append(s.matchers, m)
	}
	return s
}

// Categories returns the table the scanner was built with.
func (s *Scanner) Categories() []model.Category {
	return s.categories
}

// Classify returns the key of the first category whose pattern set matches
// the cookie name, in configured order, or the fallback key.
func (s *Scanner) Classify(name string) string {
	for _, m := range s.matchers {
		for _, exact := range m.exact {
			if strings.EqualFold(name, exact) {
				return m.key
			}
		}
		for _, re := range m.wildcard {
			if re.MatchString(name) {
				return m.key
			}
		}
	}
	return s.fallback
}

// Scan parses the raw cookie header string and classifies every name.
func (s *Scanner) Scan(rawJar string) Summary {
	summary := Summary{
		Counts:            make(map[string]int),
		CookiesByCategory: make(map[string][]string),
	}
	for _, name := range ParseJar(rawJar) {
		key := s.Classify(name)
		summary.Total++
		summary.Counts[key]++
		summary.CookiesByCategory[key] = append(summary.CookiesByCategory[key], name)
	}
	return summary
}

// ParseJar extracts the cookie names from a raw Cookie header string. Each
// semicolon-delimited segment is split at its first '='; a segment without
// '=' is kept as a valueless cookie name. Names are URL-decoded, falling
// back to the raw name when decoding fails.
func ParseJar(rawJar string) []string {
	var names []string
	for _, segment := range strings.Split(rawJar, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name := segment
		if idx := strings.Index(segment, "="); idx >= 0 {
			name = segment[:idx]
		}
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
		names = append(names, name)
	}
	return names
}

// compileWildcard turns a '*' pattern into an anchored case-insensitive
// regexp so partial substring matches never count.
func compileWildcard(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile("(?i)^" + strings.Join(parts, ".*") + "$")
}
