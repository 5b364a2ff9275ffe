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

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
	errors2 "github.com/wso2/identity-cookie-consent/internal/system/errors"
	"github.com/wso2/identity-cookie-consent/internal/system/log"
)

// Payload is the body posted to the host's consent logging endpoint on
// every resolution.
type Payload struct {
	Action    model.Action          `json:"consent_action"`
	Settings  model.ConsentSettings `json:"settings"`
	Timestamp string                `json:"timestamp"`
	Receipt   string                `json:"receipt,omitempty"`
}

// Exporter posts consent actions to an external logging endpoint. The call
// is fire-and-forget: failure is logged and never surfaces to the caller or
// alters UI state. A nil Exporter is a valid no-op.
type Exporter struct {
	endpoint   string
	client     *http.Client
	signingKey []byte
}

// NewExporter returns an exporter for the given endpoint. Returns nil when
// endpoint is empty so callers can hold it unconditionally. signingKey, when
// non-empty, enables signed consent receipts on every payload.
func NewExporter(endpoint string, timeout time.Duration, signingKey []byte) *Exporter {
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Exporter{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: timeout},
		signingKey: signingKey,
	}
}

// Export posts the consent action asynchronously. Errors are logged at WARN.
func (e *Exporter) Export(settings model.ConsentSettings, action model.Action, timestamp string) {
	if e == nil {
		return
	}
	go func() {
		if err := e.Send(settings, action, timestamp); err != nil {
			log.GetLogger().Warn("Failed to export consent action",
				log.String("consent_action", string(action)), log.Error(err))
		}
	}()
}

// Send posts the consent action synchronously and reports the outcome.
func (e *Exporter) Send(settings model.ConsentSettings, action model.Action, timestamp string) error {
	payload := Payload{
		Action:    action,
		Settings:  settings.Normalize(),
		Timestamp: timestamp,
	}
	if len(e.signingKey) > 0 {
		receipt, err := e.signReceipt(payload)
		if err != nil {
			return errors2.NewServerError(errors2.SIGN_CONSENT_RECEIPT, err)
		}
		payload.Receipt = receipt
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors2.NewServerError(errors2.EXPORT_CONSENT_ACTION, err)
	}
	resp, err := e.client.Post(e.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors2.NewServerError(errors2.EXPORT_CONSENT_ACTION, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusBadRequest {
		return errors2.NewServerError(errors2.EXPORT_CONSENT_ACTION,
			fmt.Errorf("consent log endpoint returned status %d", resp.StatusCode))
	}
	return nil
}

// signReceipt builds an HS256 consent receipt over the decision so the host
// can keep a tamper-evident audit trail.
func (e *Exporter) signReceipt(payload Payload) (string, error) {
	claims := jwt.MapClaims{
		"jti":            uuid.New().String(),
		"iat":            time.Now().Unix(),
		"consent_action": string(payload.Action),
		"necessary":      payload.Settings.Necessary,
		"analytics":      payload.Settings.Analytics,
		"marketing":      payload.Settings.Marketing,
		"preferences":    payload.Settings.Preferences,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.signingKey)
}
