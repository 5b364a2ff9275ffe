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

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/wso2/identity-cookie-consent/internal/consent/model"
)

func TestBus_DispatchReachesAllListeners(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Listen(ConsentUpdated, func(interface{}) { order = append(order, "first") })
	bus.Listen(ConsentUpdated, func(interface{}) { order = append(order, "second") })
	bus.Listen(ConsentReset, func(interface{}) { order = append(order, "reset") })

	bus.Dispatch(ConsentUpdated, ConsentUpdate{
		Settings: model.AcceptAllSettings(),
		Action:   model.ActionAcceptAll,
	})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_RemoveIsIdempotent(t *testing.T) {
	bus := NewBus()
	calls := 0
	remove := bus.Listen(ConsentReset, func(interface{}) { calls++ })

	bus.Dispatch(ConsentReset, nil)
	remove()
	remove()
	bus.Dispatch(ConsentReset, nil)

	assert.Equal(t, 1, calls)
}

func TestBus_ChurnLeavesNoResidue(t *testing.T) {
	bus := NewBus()

	for i := 0; i < 100; i++ {
		remove := bus.Listen(ConsentUpdated, func(interface{}) {})
		remove()
	}

	assert.Empty(t, bus.listeners[ConsentUpdated])
	assert.Empty(t, bus.order[ConsentUpdated])
}

func TestBus_NilBusIsANoOp(t *testing.T) {
	var bus *Bus
	bus.Dispatch(ConsentUpdated, nil)
}
