/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

package errors

const errorPrefix = "CCE-"

var (
	// Consent store error codes

	LOAD_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Error while loading the consent record.",
	}

	SAVE_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Error while persisting the consent record.",
	}

	DELETE_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Error while deleting the consent record.",
	}

	CORRUPT_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Persisted consent record is corrupt.",
	}

	INIT_STORAGE_BACKEND = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Error while initializing the storage backend.",
	}

	// Script gate error codes

	INSTALL_INTERCEPTOR = ErrorMessage{
		Code:    errorPrefix + "12001",
		Message: "Error while installing the script source interceptor.",
	}

	PARSE_DOCUMENT = ErrorMessage{
		Code:    errorPrefix + "12002",
		Message: "Error while parsing the host document.",
	}

	// Export error codes

	EXPORT_CONSENT_ACTION = ErrorMessage{
		Code:    errorPrefix + "13001",
		Message: "Error while exporting the consent action.",
	}

	SIGN_CONSENT_RECEIPT = ErrorMessage{
		Code:    errorPrefix + "13002",
		Message: "Error while signing the consent receipt.",
	}

	// Configuration error codes

	INVALID_BANNER_POSITION = ErrorMessage{
		Code:    errorPrefix + "14001",
		Message: "Invalid banner position value.",
	}

	INVALID_STORAGE_BACKEND = ErrorMessage{
		Code:    errorPrefix + "14002",
		Message: "Invalid storage backend value.",
	}
)
