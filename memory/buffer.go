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

package memory

import (
	"fmt"
	"sync/atomic"

	"github.com/casacore/casabind/internal/debug"
)

// Buffer is a reference counted run of T values whose ownership was fixed
// by a Policy when it was created.
type Buffer[T any] struct {
	refCount int64
	mem      Allocator
	data     []T
	policy   Policy
	owned    bool
}

// NewBuffer wraps data according to policy.
//
// Copy allocates fresh storage from mem and copies data into it. TakeOwnership
// adopts data and hands it back to mem when the last reference is released, so
// data must have come from mem (see AllocateSlice). Share references data and
// never frees it.
func NewBuffer[T any](mem Allocator, data []T, policy Policy) (*Buffer[T], error) {
	if mem == nil {
		mem = DefaultAllocator
	}

	b := &Buffer[T]{refCount: 1, mem: mem, policy: policy}
	switch policy {
	case Copy:
		b.data = AllocateSlice[T](mem, len(data))
		copy(b.data, data)
		b.owned = true
	case TakeOwnership:
		b.data = data
		b.owned = true
	case Share:
		b.data = data
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPolicy, policy)
	}
	return b, nil
}

// NewZeroBuffer allocates n zeroed values owned by the buffer.
func NewZeroBuffer[T any](mem Allocator, n int) *Buffer[T] {
	if mem == nil {
		mem = DefaultAllocator
	}
	return &Buffer[T]{
		refCount: 1,
		mem:      mem,
		data:     AllocateSlice[T](mem, n),
		policy:   Copy,
		owned:    true,
	}
}

// Retain increases the reference count by 1.
func (b *Buffer[T]) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Release decreases the reference count by 1. When it reaches zero owned
// storage is returned to the allocator. Releasing an already freed buffer
// is a no-op.
func (b *Buffer[T]) Release() {
	for {
		cur := atomic.LoadInt64(&b.refCount)
		if cur <= 0 {
			return
		}
		if atomic.CompareAndSwapInt64(&b.refCount, cur, cur-1) {
			if cur == 1 {
				b.free()
			}
			return
		}
	}
}

func (b *Buffer[T]) free() {
	if b.owned && b.data != nil {
		FreeSlice(b.mem, b.data)
	}
	b.data = nil
}

// Values returns the elements, or nil once released.
func (b *Buffer[T]) Values() []T { return b.data }

func (b *Buffer[T]) Len() int { return len(b.data) }

func (b *Buffer[T]) Policy() Policy { return b.policy }

// Owned reports whether the buffer frees its storage on final release.
func (b *Buffer[T]) Owned() bool { return b.owned }

func (b *Buffer[T]) Released() bool { return atomic.LoadInt64(&b.refCount) <= 0 }

// View returns a shared, non-owning view of the buffer. The view keeps the
// buffer alive until it is released.
func (b *Buffer[T]) View() *View[T] {
	return b.ViewRange(0, len(b.data))
}

// ViewRange is like View but limited to n elements starting at off.
func (b *Buffer[T]) ViewRange(off, n int) *View[T] {
	debug.Assert(!b.Released(), "view of released buffer")
	debug.Assert(off >= 0 && off+n <= len(b.data), "view out of range")
	b.Retain()
	return &View[T]{buf: b, data: b.data[off : off+n : off+n]}
}
