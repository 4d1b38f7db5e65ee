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

package array

import (
	"fmt"
	"sync/atomic"

	"github.com/casacore/casabind/casa"
	"github.com/casacore/casabind/internal/debug"
	"github.com/casacore/casabind/memory"
)

// Array is an n-dimensional, column-major container of T.
type Array[T casa.VectorElement] struct {
	refCount int64
	mem      memory.Allocator
	shape    IPosition
	buf      *memory.Buffer[T]
	off      int
	n        int
}

// New returns an empty array with no axes.
func New[T casa.VectorElement](mem memory.Allocator) *Array[T] {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Array[T]{refCount: 1, mem: mem, buf: memory.NewZeroBuffer[T](mem, 0)}
}

// NewShaped returns a zero-filled array of the given shape.
func NewShaped[T casa.VectorElement](mem memory.Allocator, shape IPosition) (*Array[T], error) {
	if err := validShape[T](shape); err != nil {
		return nil, err
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	n := int(shape.Product())
	return &Array[T]{refCount: 1, mem: mem, shape: shape.Clone(), buf: memory.NewZeroBuffer[T](mem, n), n: n}, nil
}

// FromBuffer builds an array of the given shape over host data under the
// given ownership policy. data must hold exactly shape.Product() values.
func FromBuffer[T casa.VectorElement](mem memory.Allocator, shape IPosition, data []T, policy memory.Policy) (*Array[T], error) {
	if err := validShape[T](shape); err != nil {
		return nil, err
	}
	n := int(shape.Product())
	if len(data) != n {
		return nil, fmt.Errorf("%w: shape %s needs %d values, buffer holds %d", casa.ErrInvalid, shape, n, len(data))
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	buf, err := memory.NewBuffer(mem, data, policy)
	if err != nil {
		return nil, err
	}
	return &Array[T]{refCount: 1, mem: mem, shape: shape.Clone(), buf: buf, n: n}, nil
}

// Retain increases the reference count by 1.
func (a *Array[T]) Retain() { atomic.AddInt64(&a.refCount, 1) }

// Release decreases the reference count by 1. When the reference count
// goes to zero the storage reference is dropped.
func (a *Array[T]) Release() {
	debug.Assert(atomic.LoadInt64(&a.refCount) > 0, "too many releases")

	if atomic.AddInt64(&a.refCount, -1) == 0 {
		a.buf.Release()
	}
}

func (a *Array[T]) values() []T {
	v := a.buf.Values()
	if v == nil {
		return nil
	}
	return v[a.off : a.off+a.n]
}

// Shape returns a copy of the array shape.
func (a *Array[T]) Shape() IPosition { return a.shape.Clone() }

func (a *Array[T]) Ndim() int { return len(a.shape) }

// Len is the number of elements.
func (a *Array[T]) Len() int { return a.n }

// Policy reports the ownership policy of the backing storage.
func (a *Array[T]) Policy() memory.Policy { return a.buf.Policy() }

// Index returns the i-th element in storage order.
func (a *Array[T]) Index(i int) (T, error) {
	var zero T
	v := a.values()
	if v == nil && a.n > 0 {
		return zero, memory.ErrReleased
	}
	if i < 0 || i >= len(v) {
		return zero, fmt.Errorf("%w: element %d of %d", casa.ErrIndex, i, len(v))
	}
	return v[i], nil
}

// SetIndex stores v at storage position i.
func (a *Array[T]) SetIndex(i int, v T) error {
	vals := a.values()
	if i < 0 || i >= len(vals) {
		return fmt.Errorf("%w: element %d of %d", casa.ErrIndex, i, len(vals))
	}
	vals[i] = v
	return nil
}

// At returns the element at pos.
func (a *Array[T]) At(pos IPosition) (T, error) {
	var zero T
	off, err := a.shape.offset(pos)
	if err != nil {
		return zero, err
	}
	return a.Index(off)
}

// Set stores v at pos.
func (a *Array[T]) Set(pos IPosition, v T) error {
	off, err := a.shape.offset(pos)
	if err != nil {
		return err
	}
	return a.SetIndex(off, v)
}

// Slice returns the sub-array at index i of the last axis. It references
// the same storage.
func (a *Array[T]) Slice(i int) (*Array[T], error) {
	if len(a.shape) == 0 {
		return nil, fmt.Errorf("%w: slice of an array without axes", casa.ErrIndex)
	}
	last := a.shape[len(a.shape)-1]
	if i < 0 || int64(i) >= last {
		return nil, fmt.Errorf("%w: slice %d of last axis with length %d", casa.ErrIndex, i, last)
	}
	sub := a.shape[:len(a.shape)-1].Clone()
	if len(sub) == 0 {
		sub = IPosition{1}
	}
	n := int(sub.Product())
	a.buf.Retain()
	return &Array[T]{refCount: 1, mem: a.mem, shape: sub, buf: a.buf, off: a.off + i*n, n: n}, nil
}

// Resize gives the array a new shape. Storage is replaced by zeroed
// storage unless the shape is unchanged; other arrays sharing the old
// storage keep it.
func (a *Array[T]) Resize(shape IPosition) error {
	if shape.Equal(a.shape) {
		return nil
	}
	if err := validShape[T](shape); err != nil {
		return err
	}
	n := int(shape.Product())
	old := a.buf
	a.buf = memory.NewZeroBuffer[T](a.mem, n)
	a.shape, a.off, a.n = shape.Clone(), 0, n
	old.Release()
	return nil
}

// ToVector copies the elements out in storage order.
func (a *Array[T]) ToVector() []T {
	return append([]T(nil), a.values()...)
}

// Values exposes the elements in storage order without copying.
func (a *Array[T]) Values() []T { return a.values() }

// Storage hands out a shared view of the elements. The caller must release
// it, directly or through FreeStorage.
func (a *Array[T]) Storage() *memory.View[T] {
	return a.buf.ViewRange(a.off, a.n)
}

// FreeStorage releases a view obtained from Storage.
func (a *Array[T]) FreeStorage(v *memory.View[T]) {
	v.Release()
}

// Reshape returns a copy of the array with a new shape holding the same
// number of elements.
func (a *Array[T]) Reshape(mem memory.Allocator, shape IPosition) (*Array[T], error) {
	if shape.Product() != int64(a.n) {
		return nil, fmt.Errorf("%w: cannot reshape %s into %s", casa.ErrInvalid, a.shape, shape)
	}
	return FromBuffer(mem, shape, a.values(), memory.Copy)
}

// GetSlice copies the selection of sl out of the array.
func (a *Array[T]) GetSlice(mem memory.Allocator, sl *Slicer) (*Array[T], error) {
	if err := sl.Check(a.shape); err != nil {
		return nil, err
	}
	out, err := NewShaped[T](mem, sl.Length())
	if err != nil {
		return nil, err
	}
	vals, dst := a.values(), out.values()
	i := 0
	err = sl.ForEach(func(pos IPosition) error {
		off, err := a.shape.offset(pos)
		if err != nil {
			return err
		}
		dst[i] = vals[off]
		i++
		return nil
	})
	if err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// PutSlice writes src into the selection of sl.
func (a *Array[T]) PutSlice(sl *Slicer, src *Array[T]) error {
	if err := sl.Check(a.shape); err != nil {
		return err
	}
	if src.n != int(sl.Length().Product()) {
		return fmt.Errorf("%w: slicer selects %d values, source has %d", casa.ErrInvalid, sl.Length().Product(), src.n)
	}
	vals, in := a.values(), src.values()
	i := 0
	return sl.ForEach(func(pos IPosition) error {
		off, err := a.shape.offset(pos)
		if err != nil {
			return err
		}
		vals[off] = in[i]
		i++
		return nil
	})
}
