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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errors2 "github.com/wso2/identity-cookie-consent/internal/system/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "config", "deployment.yaml"), []byte(content), 0o644))
	return home
}

func TestLoadConfig_FullDeployment(t *testing.T) {
	home := writeConfig(t, `
log:
  log_level: "DEBUG"
banner:
  position: "modal"
  cookie_policy_url: "https://example.org/policy"
  gtm_id: "GTM-XYZ"
  resolve_delay_ms: 250
translations:
  accept_all: "Accept all"
cookie_categories:
  analytics:
    label: "Statistics"
    patterns: ["_pk_*"]
script_gate:
  domains:
    - domain: "tracker.example"
      category: "marketing"
consent_mode:
  wait_for_update_ms: 750
storage:
  backend: "sqlite"
  path: "state/consent.db"
export:
  endpoint: "https://logs.example.org/consent"
`)

	cfg, err := LoadConfig(home, "config/deployment.yaml")
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Log.LogLevel)
	assert.Equal(t, PositionModal, cfg.Banner.Position)
	assert.Equal(t, "GTM-XYZ", cfg.Banner.GTMID)
	assert.Equal(t, 250, cfg.Banner.ResolveDelayMs)
	assert.Equal(t, "Accept all", cfg.Translations["accept_all"])
	require.Contains(t, cfg.CookieCategories, "analytics")
	assert.Equal(t, []string{"_pk_*"}, cfg.CookieCategories["analytics"].Patterns)
	require.Len(t, cfg.ScriptGate.Domains, 1)
	assert.Equal(t, "tracker.example", cfg.ScriptGate.Domains[0].Domain)
	assert.Equal(t, 750, cfg.ConsentMode.WaitForUpdateMs)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "https://logs.example.org/consent", cfg.Export.Endpoint)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	home := writeConfig(t, "banner:\n  gtm_id: \"GTM-1\"\n")

	cfg, err := LoadConfig(home, "config/deployment.yaml")
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Log.LogLevel)
	assert.Equal(t, PositionBottom, cfg.Banner.Position)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "state", cfg.Storage.Path)
	assert.Equal(t, 500, cfg.ConsentMode.WaitForUpdateMs)
}

func TestLoadConfig_ExpandsEnvReferences(t *testing.T) {
	t.Setenv("TEST_GTM_ID", "GTM-FROM-ENV")
	home := writeConfig(t, "banner:\n  gtm_id: \"${TEST_GTM_ID}\"\n")

	cfg, err := LoadConfig(home, "config/deployment.yaml")
	require.NoError(t, err)
	assert.Equal(t, "GTM-FROM-ENV", cfg.Banner.GTMID)
}

func TestLoadConfig_RejectsInvalidPosition(t *testing.T) {
	home := writeConfig(t, "banner:\n  position: \"sidebar\"\n")

	_, err := LoadConfig(home, "config/deployment.yaml")
	require.Error(t, err)
	clientErr, ok := err.(*errors2.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors2.INVALID_BANNER_POSITION.Code, clientErr.Code)
}

func TestLoadConfig_RejectsInvalidBackend(t *testing.T) {
	home := writeConfig(t, "storage:\n  backend: \"redis\"\n")

	_, err := LoadConfig(home, "config/deployment.yaml")
	require.Error(t, err)
	clientErr, ok := err.(*errors2.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors2.INVALID_STORAGE_BACKEND.Code, clientErr.Code)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), "config/deployment.yaml")
	assert.Error(t, err)
}
