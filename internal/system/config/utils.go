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
	"path"

	"gopkg.in/yaml.v2"

	errors2 "github.com/wso2/identity-cookie-consent/internal/system/errors"
)

// LoadConfig reads the deployment file relative to the engine home,
// expanding ${ENV} references before decoding.
func LoadConfig(engineHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(engineHome, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.Banner.Position == "" {
		cfg.Banner.Position = PositionBottom
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "state"
	}
	if cfg.ConsentMode.WaitForUpdateMs == 0 {
		cfg.ConsentMode.WaitForUpdateMs = 500
	}
}

func validate(cfg *Config) error {
	switch cfg.Banner.Position {
	case PositionTop, PositionBottom, PositionModal:
	default:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_BANNER_POSITION.Code,
			Message:     errors2.INVALID_BANNER_POSITION.Message,
			Description: "position must be one of top, bottom or modal.",
		})
	}
	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_STORAGE_BACKEND.Code,
			Message:     errors2.INVALID_STORAGE_BACKEND.Message,
			Description: "storage backend must be file or sqlite.",
		})
	}
	return nil
}
