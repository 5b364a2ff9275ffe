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

// RecordState classifies the outcome of loading the persisted consent
// record. Making the three cases explicit keeps the banner's initial-state
// decision a total function instead of a truthiness check.
type RecordState int

const (
	// NoRecord means no consent record exists; the banner must show.
	NoRecord RecordState = iota
	// ValidRecord means a well-formed record was loaded.
	ValidRecord
	// CorruptRecord means a record existed but could not be decoded. The
	// record has already been discarded; a subsequent load reports NoRecord.
	CorruptRecord
)

func (s RecordState) String() string {
	switch s {
	case NoRecord:
		return "no_record"
	case ValidRecord:
		return "valid_record"
	case CorruptRecord:
		return "corrupt_record"
	default:
		return "unknown"
	}
}

// ConsentRecord is the persisted consent decision.
type ConsentRecord struct {
	Settings  ConsentSettings `json:"settings"`
	Timestamp string          `json:"timestamp"`
}

// LoadResult is the outcome of ConsentStore.Load. Record is non-nil only
// when State is ValidRecord.
type LoadResult struct {
	State  RecordState
	Record *ConsentRecord
}
