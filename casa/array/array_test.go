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

package array_test

import (
	"testing"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/casa/array"
	"github.com/casacore/casabind/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPosition(t *testing.T) {
	p, err := array.NewIPosition(3)
	require.NoError(t, err)
	assert.Equal(t, array.IPosition{0, 0, 0}, p)

	p, err = array.NewIPosition(2, 7)
	require.NoError(t, err)
	assert.Equal(t, array.IPosition{7, 7}, p)

	p, err = array.NewIPosition(3, 2, 3, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 24, p.Product())
	assert.Equal(t, "[2, 3, 4]", p.String())

	_, err = array.NewIPosition(3, 1, 2)
	assert.ErrorIs(t, err, casa.ErrInvalid)
	_, err = p.At(3)
	assert.ErrorIs(t, err, casa.ErrIndex)

	assert.Zero(t, array.IPosition{}.Product())
	assert.True(t, p.Equal(p.Clone()))
}

func TestArrayColumnMajor(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.FromBuffer(mem, array.IPosition{2, 3}, []int32{0, 1, 2, 3, 4, 5}, memory.Copy)
	require.NoError(t, err)
	defer a.Release()

	v, err := a.At(array.IPosition{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
	v, err = a.At(array.IPosition{0, 1})
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	_, err = a.At(array.IPosition{2, 0})
	assert.ErrorIs(t, err, casa.ErrIndex)
	_, err = a.At(array.IPosition{0})
	assert.ErrorIs(t, err, casa.ErrIndex)

	require.NoError(t, a.Set(array.IPosition{1, 1}, 30))
	assert.Equal(t, []int32{0, 1, 2, 30, 4, 5}, a.ToVector())
}

func TestArrayFromBufferLength(t *testing.T) {
	_, err := array.FromBuffer(nil, array.IPosition{2, 2}, []float64{1, 2, 3}, memory.Share)
	assert.ErrorIs(t, err, casa.ErrInvalid)
	_, err = array.FromBuffer(nil, array.IPosition{-1}, []float64{}, memory.Share)
	assert.ErrorIs(t, err, casa.ErrInvalid)
	_, err = array.FromBuffer[float64](nil, array.IPosition{1}, []float64{1}, 0)
	assert.ErrorIs(t, err, memory.ErrInvalidPolicy)
}

func TestArraySharePolicy(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	host := []float64{1, 2, 3, 4}
	shared, err := array.FromBuffer(mem, array.IPosition{4}, host, memory.Share)
	require.NoError(t, err)
	copied, err := array.FromBuffer(mem, array.IPosition{4}, host, memory.Copy)
	require.NoError(t, err)

	host[0] = 100
	s0, _ := shared.Index(0)
	c0, _ := copied.Index(0)
	assert.Equal(t, 100.0, s0)
	assert.Equal(t, 1.0, c0)

	require.NoError(t, shared.SetIndex(3, -4))
	assert.Equal(t, -4.0, host[3])

	assert.Equal(t, memory.Share, shared.Policy())
	assert.Equal(t, memory.Copy, copied.Policy())
	shared.Release()
	copied.Release()
	assert.Equal(t, []float64{100, 2, 3, -4}, host)
}

func TestArraySliceSharesStorage(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.NewShaped[int64](mem, array.IPosition{2, 3})
	require.NoError(t, err)
	for i := 0; i < a.Len(); i++ {
		require.NoError(t, a.SetIndex(i, int64(i)))
	}

	s, err := a.Slice(2)
	require.NoError(t, err)
	assert.Equal(t, array.IPosition{2}, s.Shape())
	assert.Equal(t, []int64{4, 5}, s.ToVector())

	require.NoError(t, s.SetIndex(0, 40))
	a.Release()

	// the slice keeps the storage alive
	v, err := s.Index(0)
	require.NoError(t, err)
	assert.Equal(t, int64(40), v)
	s.Release()

	_, err = a.Slice(3)
	assert.ErrorIs(t, err, casa.ErrIndex)
}

func TestArrayStorageView(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.FromBuffer(mem, array.IPosition{3}, []uint8{1, 2, 3}, memory.Copy)
	require.NoError(t, err)

	view := a.Storage()
	a.Release()
	assert.Equal(t, []uint8{1, 2, 3}, view.Values())

	a.FreeStorage(view)
	a.FreeStorage(view)
	assert.True(t, view.Released())
	assert.Zero(t, mem.CurrentAlloc())
}

func TestArrayGetPutSlice(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.NewShaped[float32](mem, array.IPosition{4, 4})
	require.NoError(t, err)
	defer a.Release()
	for i := 0; i < a.Len(); i++ {
		require.NoError(t, a.SetIndex(i, float32(i)))
	}

	sl, err := array.NewSlicer(array.IPosition{1, 0}, array.IPosition{3, 2}, array.IPosition{2, 2}, array.EndIsLast)
	require.NoError(t, err)
	assert.Equal(t, array.IPosition{2, 2}, sl.Length())

	got, err := a.GetSlice(mem, sl)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 9, 11}, got.ToVector())

	for i := 0; i < got.Len(); i++ {
		require.NoError(t, got.SetIndex(i, -1))
	}
	require.NoError(t, a.PutSlice(sl, got))
	got.Release()

	v, _ := a.At(array.IPosition{3, 2})
	assert.Equal(t, float32(-1), v)
	v, _ = a.At(array.IPosition{2, 2})
	assert.Equal(t, float32(10), v)

	strided, err := array.NewSlicer(array.IPosition{0, 1}, array.IPosition{2, 2}, array.IPosition{2, 2}, array.EndIsLength)
	require.NoError(t, err)
	got, err = a.GetSlice(mem, strided)
	require.NoError(t, err)
	assert.Equal(t, array.IPosition{2, 2}, got.Shape())
	assert.Equal(t, []float32{4, 6, 12, 14}, got.ToVector())
	got.Release()

	bad, err := array.NewSlicer(array.IPosition{0, 0}, array.IPosition{5, 1}, array.IPosition{1, 1}, array.EndIsLength)
	require.NoError(t, err)
	_, err = a.GetSlice(mem, bad)
	assert.ErrorIs(t, err, casa.ErrIndex)

	_, err = array.NewSlicer(array.IPosition{0}, array.IPosition{1}, array.IPosition{0}, array.EndIsLength)
	assert.ErrorIs(t, err, casa.ErrInvalid)
}

func TestSlicerLength(t *testing.T) {
	tests := []struct {
		name               string
		start, end, stride int64
		endIs              array.LengthOrLast
		length, last       int64
	}{
		{"length unit stride", 1, 3, 1, array.EndIsLength, 3, 3},
		{"length strided", 1, 3, 2, array.EndIsLength, 3, 5},
		{"last strided", 1, 5, 2, array.EndIsLast, 3, 5},
		{"last between strides", 1, 6, 2, array.EndIsLast, 3, 5},
		{"last before start", 4, 2, 1, array.EndIsLast, 0, 0},
		{"empty length", 2, 0, 3, array.EndIsLength, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl, err := array.NewSlicer(array.IPosition{tt.start}, array.IPosition{tt.end}, array.IPosition{tt.stride}, tt.endIs)
			require.NoError(t, err)
			assert.Equal(t, array.IPosition{tt.length}, sl.Length())

			var visited []int64
			require.NoError(t, sl.ForEach(func(pos array.IPosition) error {
				visited = append(visited, pos[0])
				return nil
			}))
			require.Len(t, visited, int(tt.length))
			if tt.length > 0 {
				assert.Equal(t, tt.last, visited[len(visited)-1])
			}
		})
	}
}

func TestArrayReshape(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a, err := array.FromBuffer(mem, array.IPosition{6}, []int16{1, 2, 3, 4, 5, 6}, memory.Copy)
	require.NoError(t, err)
	defer a.Release()

	r, err := a.Reshape(mem, array.IPosition{3, 2})
	require.NoError(t, err)
	defer r.Release()
	v, _ := r.At(array.IPosition{0, 1})
	assert.Equal(t, int16(4), v)

	_, err = a.Reshape(mem, array.IPosition{4})
	assert.ErrorIs(t, err, casa.ErrInvalid)
}

func TestVector(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	v := array.VectorOf(mem, []string{"a", "b"})
	defer v.Release()
	assert.Equal(t, 1, v.Ndim())
	assert.Equal(t, []string{"a", "b"}, v.ToVector())

	e := array.NewVector[uint64](mem)
	defer e.Release()
	assert.Equal(t, array.IPosition{0}, e.Shape())

	_, err := array.NewVectorShaped[bool](mem, array.IPosition{2, 2})
	assert.ErrorIs(t, err, casa.ErrInvalid)
}
