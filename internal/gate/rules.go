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
	"net/url"
	"strings"

	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

// DomainRule maps a third-party domain to the consent category it requires.
// Rules are configuration data, not engine logic; hosts override them.
type DomainRule struct {
	Domain   string `yaml:"domain" json:"domain"`
	Category string `yaml:"category" json:"category"`
}

// DefaultDomainRules is the built-in denylist of well-known analytics and
// ad-network hosts.
func DefaultDomainRules() []DomainRule {
	return []DomainRule{
		{Domain: "google-analytics.com", Category: model.CategoryAnalytics},
		{Domain: "googletagmanager.com", Category: model.CategoryAnalytics},
		{Domain: "hotjar.com", Category: model.CategoryAnalytics},
		{Domain: "clarity.ms", Category: model.CategoryAnalytics},
		{Domain: "doubleclick.net", Category: model.CategoryMarketing},
		{Domain: "googlesyndication.com", Category: model.CategoryMarketing},
		{Domain: "googleadservices.com", Category: model.CategoryMarketing},
		{Domain: "facebook.net", Category: model.CategoryMarketing},
		{Domain: "snap.licdn.com", Category: model.CategoryMarketing},
	}
}

type ruleSet struct {
	rules []DomainRule
}

func newRuleSet(rules []DomainRule) ruleSet {
	if len(rules) == 0 {
		rules = DefaultDomainRules()
	}
	return ruleSet{rules: rules}
}

// requiredCategory returns the consent category the script source needs, or
// false when the source matches no rule and may load freely.
func (r ruleSet) requiredCategory(src string) (string, bool) {
	host := hostOf(src)
	if host == "" {
		return "", false
	}
	for _, rule := range r.rules {
		if host == rule.Domain || strings.HasSuffix(host, "."+rule.Domain) {
			return rule.Category, true
		}
	}
	return "", false
}

func hostOf(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	u, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if u.Hostname() == "" && !strings.HasPrefix(src, "//") {
		// Scheme-less source such as "cdn.example.com/a.js".
		if u, err = url.Parse("https://" + src); err != nil {
			return ""
		}
	}
	return strings.ToLower(u.Hostname())
}
