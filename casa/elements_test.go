// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package casa_test

import (
	"testing"

	"github.com/casacore/casabind/casa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, casa.TpBool, casa.TypeOf[bool]())
	assert.Equal(t, casa.TpDComplex, casa.TypeOf[complex128]())
	assert.Equal(t, casa.TpString, casa.TypeOf[string]())
	assert.Equal(t, "Float64", casa.ElementName[float64]())
	assert.Equal(t, "UInt8", casa.ElementName[uint8]())
}

func TestArrayOf(t *testing.T) {
	assert.Equal(t, casa.TpArrayDouble, casa.ArrayOf(casa.TpDouble))
	assert.Equal(t, casa.TpDouble, casa.ScalarOf(casa.TpArrayDouble))
	assert.True(t, casa.TpArrayInt.IsArray())
	assert.False(t, casa.TpInt.IsArray())
}

func TestCastValue(t *testing.T) {
	i, err := casa.CastValue[int16](1000)
	require.NoError(t, err)
	assert.Equal(t, int16(1000), i)

	_, err = casa.CastValue[int8](1000)
	assert.ErrorIs(t, err, casa.ErrType)

	f, err := casa.CastValue[float32](0.5)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), f)

	_, err = casa.CastValue[float32](0.1)
	assert.ErrorIs(t, err, casa.ErrType)

	_, err = casa.CastValue[string](1)
	assert.ErrorIs(t, err, casa.ErrType)

	c, err := casa.CastValue[complex64](2)
	require.NoError(t, err)
	assert.Equal(t, complex64(2), c)
}
