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

package memory_test

import (
	"testing"

	"github.com/casacore/casabind/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferCopy(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	src := []float64{1, 2, 3}
	buf, err := memory.NewBuffer(mem, src, memory.Copy)
	require.NoError(t, err)
	assert.True(t, buf.Owned())
	assert.Equal(t, 24, mem.CurrentAlloc())

	src[0] = 42
	assert.Equal(t, []float64{1, 2, 3}, buf.Values())

	buf.Release()
	assert.True(t, buf.Released())
	assert.Nil(t, buf.Values())
}

func TestBufferShare(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	src := []int32{1, 2, 3}
	buf, err := memory.NewBuffer(mem, src, memory.Share)
	require.NoError(t, err)
	assert.False(t, buf.Owned())
	assert.Zero(t, mem.CurrentAlloc())

	src[1] = 20
	assert.Equal(t, int32(20), buf.Values()[1])
	buf.Values()[2] = 30
	assert.Equal(t, int32(30), src[2])

	buf.Release()
	assert.Equal(t, []int32{1, 20, 30}, src)
}

func TestBufferTakeOwnership(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	data := memory.AllocateSlice[uint16](mem, 8)
	buf, err := memory.NewBuffer(mem, data, memory.TakeOwnership)
	require.NoError(t, err)

	buf.Retain()
	buf.Release()
	assert.False(t, buf.Released())
	assert.Equal(t, 16, mem.CurrentAlloc())

	buf.Release()
	buf.Release()
	assert.Zero(t, mem.CurrentAlloc())
	assert.Zero(t, mem.InvalidFrees())
}

func TestBufferStrings(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf, err := memory.NewBuffer(mem, []string{"a", "b"}, memory.Copy)
	require.NoError(t, err)
	assert.Zero(t, mem.CurrentAlloc())
	assert.Equal(t, []string{"a", "b"}, buf.Values())
	buf.Release()
}

func TestBufferInvalidPolicy(t *testing.T) {
	var p memory.Policy
	assert.False(t, p.Valid())

	_, err := memory.NewBuffer(nil, []int8{1}, p)
	assert.ErrorIs(t, err, memory.ErrInvalidPolicy)
}

func TestViewRelease(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	buf := memory.NewZeroBuffer[float32](mem, 4)
	buf.Values()[3] = 1.5

	v := buf.ViewRange(2, 2)
	buf.Release()
	assert.False(t, buf.Released(), "view keeps the buffer alive")

	got, err := v.At(1)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), got)
	_, err = v.At(2)
	assert.Error(t, err)

	v.Release()
	v.Release()
	assert.True(t, v.Released())
	assert.True(t, buf.Released())
	assert.Zero(t, v.Len())
	assert.Nil(t, v.Values())
	_, err = v.At(0)
	assert.ErrorIs(t, err, memory.ErrReleased)
}

func TestPolicy(t *testing.T) {
	for _, tc := range []struct {
		p    memory.Policy
		name string
		val  int8
	}{
		{memory.Copy, "COPY", 1},
		{memory.TakeOwnership, "TAKE_OVER", 2},
		{memory.Share, "SHARE", 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.p.String())
			assert.EqualValues(t, tc.val, tc.p)
			p, err := memory.ParsePolicy(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.p, p)
		})
	}

	_, err := memory.ParsePolicy("BORROW")
	assert.ErrorIs(t, err, memory.ErrInvalidPolicy)
}
