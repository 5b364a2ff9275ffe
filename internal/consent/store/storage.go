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

package store

// Storage entry keys. The consent record and its timestamp are the only two
// entries the engine ever writes. Absence of KeyConsentRecord is the sole
// signal that the banner must show.
const (
	KeyConsentRecord    = "cck_consent"
	KeyConsentTimestamp = "cck_consent_timestamp"
)

// Storage is the durable client-side key-value store behind the consent
// engine. Implementations must be local to the visitor's device; there is
// deliberately no networked implementation.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set stores the value, overwriting any previous one.
	Set(key string, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}
