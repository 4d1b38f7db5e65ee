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

import "unsafe"

// alignUp rounds an address up to the next multiple of alignment.
func alignUp(v int) int {
	return (v + alignment - 1) &^ (alignment - 1)
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// elemSize reports the width in bytes of T when T is a pointer-free fixed
// width value, and false otherwise. Only fixed width elements are placed in
// allocator-provided storage.
func elemSize[T any]() (int, bool) {
	var zero T
	switch any(zero).(type) {
	case bool, int8, uint8, int16, uint16, int32, uint32, int64, uint64,
		float32, float64, complex64, complex128:
		return int(unsafe.Sizeof(zero)), true
	}
	return 0, false
}

func bytesOf[T any](s []T, size int) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*size)
}

func sliceOf[T any](b []byte, n int) []T {
	if n == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// AllocateSlice returns n zeroed elements of T. Fixed width elements are
// carved out of mem; other element types come from the Go heap.
func AllocateSlice[T any](mem Allocator, n int) []T {
	size, ok := elemSize[T]()
	if !ok || n == 0 {
		return make([]T, n)
	}
	raw := mem.Allocate(n * size)
	for i := range raw {
		raw[i] = 0
	}
	return sliceOf[T](raw, n)
}

// FreeSlice returns storage obtained from AllocateSlice to mem.
func FreeSlice[T any](mem Allocator, s []T) {
	size, ok := elemSize[T]()
	if !ok || len(s) == 0 {
		return
	}
	mem.Free(bytesOf(s, size))
}
