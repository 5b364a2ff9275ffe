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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	s := newTestSQLiteStorage(t)

	require.NoError(t, s.Set(KeyConsentRecord, `{"necessary":true,"analytics":true}`))

	value, found, err := s.Get(KeyConsentRecord)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"necessary":true,"analytics":true}`, value)
}

func TestSQLiteStorage_UpsertAndDelete(t *testing.T) {
	s := newTestSQLiteStorage(t)

	require.NoError(t, s.Set(KeyConsentTimestamp, "2025-01-01T00:00:00Z"))
	require.NoError(t, s.Set(KeyConsentTimestamp, "2025-06-01T00:00:00Z"))

	value, found, err := s.Get(KeyConsentTimestamp)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2025-06-01T00:00:00Z", value)

	require.NoError(t, s.Delete(KeyConsentTimestamp))
	require.NoError(t, s.Delete(KeyConsentTimestamp))

	_, found, err = s.Get(KeyConsentTimestamp)
	require.NoError(t, err)
	assert.False(t, found)
}
