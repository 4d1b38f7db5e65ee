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
	"unsafe"

	"github.com/casacore/casabind/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoAllocatorAlignment(t *testing.T) {
	mem := memory.NewGoAllocator()
	for _, n := range []int{1, 7, 64, 1000} {
		b := mem.Allocate(n)
		require.Len(t, b, n)
		assert.Equal(t, n, cap(b))
		assert.Zero(t, uintptr(unsafe.Pointer(&b[0]))%64)
	}
	assert.Empty(t, mem.Allocate(0))
}

func TestGoAllocatorReallocate(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := mem.Allocate(16)
	copy(b, "0123456789abcdef")

	small := mem.Reallocate(4, b)
	assert.Equal(t, "0123", string(small))
	assert.Same(t, &b[0], &small[0])

	big := mem.Reallocate(32, b)
	assert.Equal(t, "0123456789abcdef", string(big[:16]))
	assert.Equal(t, make([]byte, 16), big[16:])
	assert.NotSame(t, &b[0], &big[0])
}
