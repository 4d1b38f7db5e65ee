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

// Element storage is aligned for the widest element kind a container holds
// (complex128) and padded to a cache line.
const alignment = 64

// Allocator hands out the raw storage behind containers and policy-managed
// buffers. Storage returned by Allocate is zeroed and aligned to 64 bytes.
// Free must only be called with slices obtained from the same allocator.
type Allocator interface {
	Allocate(size int) []byte
	Reallocate(size int, b []byte) []byte
	Free(b []byte)
}

// DefaultAllocator backs every container and buffer created without an
// explicit allocator. It is safe for concurrent use.
var DefaultAllocator Allocator = NewGoAllocator()

// GoAllocator takes storage from the Go heap. Free does nothing and the
// garbage collector reclaims the memory once the last view is dropped.
type GoAllocator struct{}

func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (a *GoAllocator) Allocate(size int) []byte {
	if size == 0 {
		return []byte{}
	}
	raw := make([]byte, size+alignment)
	shift := alignUp(int(addressOf(raw))) - int(addressOf(raw))
	return raw[shift : shift+size : shift+size]
}

// Reallocate keeps the leading min(size, len(b)) bytes. Shrinking reslices
// in place; growing always moves so callers never alias stale capacity.
func (a *GoAllocator) Reallocate(size int, b []byte) []byte {
	switch {
	case size == len(b):
		return b
	case size < len(b):
		return b[:size:size]
	}
	out := a.Allocate(size)
	copy(out, b)
	return out
}

func (a *GoAllocator) Free([]byte) {}
