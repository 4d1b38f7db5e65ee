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
)

// View is a non-owning window onto a Buffer handed to the host. The host
// calls Release once it has finished reading; Release may be called any
// number of times.
type View[T any] struct {
	released int32
	buf      *Buffer[T]
	data     []T
}

func (v *View[T]) Len() int {
	if v.Released() {
		return 0
	}
	return len(v.data)
}

// At returns element i.
func (v *View[T]) At(i int) (T, error) {
	var zero T
	if v.Released() {
		return zero, ErrReleased
	}
	if i < 0 || i >= len(v.data) {
		return zero, fmt.Errorf("memory: view index %d out of range [0, %d)", i, len(v.data))
	}
	return v.data[i], nil
}

// Values returns the viewed elements without copying, or nil after release.
func (v *View[T]) Values() []T {
	if v.Released() {
		return nil
	}
	return v.data
}

func (v *View[T]) Released() bool { return atomic.LoadInt32(&v.released) == 1 }

// Release drops the view's reference on the underlying buffer. Only the
// first call has an effect.
func (v *View[T]) Release() {
	if !atomic.CompareAndSwapInt32(&v.released, 0, 1) {
		return
	}
	v.data = nil
	v.buf.Release()
}
