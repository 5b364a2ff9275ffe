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

package config

import (
	cookies "github.com/wso2/identity-cookie-consent/internal/cookies/model"
	"github.com/wso2/identity-cookie-consent/internal/gate"
)

// Banner positions accepted by the host theme.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
	PositionModal  = "modal"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

// BannerConfig is the presentation surface supplied by the host
// collaborator.
type BannerConfig struct {
	Position        string `yaml:"position"`
	CookiePolicyURL string `yaml:"cookie_policy_url"`
	AboutCookiesURL string `yaml:"about_cookies_url"`
	GTMID           string `yaml:"gtm_id"`
	ResolveDelayMs  int    `yaml:"resolve_delay_ms"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Path is the state directory for the file backend or the database
	// file for the sqlite backend.
	Path string `yaml:"path"`
}

type ConsentModeConfig struct {
	WaitForUpdateMs int `yaml:"wait_for_update_ms"`
}

type ExportConfig struct {
	Endpoint   string `yaml:"endpoint"`
	SigningKey string `yaml:"signing_key"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

type ScriptGateConfig struct {
	Domains []gate.DomainRule `yaml:"domains"`
}

type Config struct {
	Log              LogConfig                   `yaml:"log"`
	Banner           BannerConfig                `yaml:"banner"`
	Translations     map[string]string           `yaml:"translations"`
	CookieCategories map[string]cookies.Override `yaml:"cookie_categories"`
	ScriptGate       ScriptGateConfig            `yaml:"script_gate"`
	ConsentMode      ConsentModeConfig           `yaml:"consent_mode"`
	Export           ExportConfig                `yaml:"export"`
	Storage          StorageConfig               `yaml:"storage"`
}
