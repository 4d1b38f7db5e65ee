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
	"fmt"
	"testing"

	"github.com/casacore/casabind/memory"
	"github.com/stretchr/testify/assert"
)

type recorder struct{ msgs []string }

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func (r *recorder) Helper() {}

func TestCheckedAllocatorDoubleFree(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())

	b := mem.Allocate(64)
	mem.Free(b)
	mem.Free(b)
	assert.Equal(t, 1, mem.InvalidFrees())
	assert.Zero(t, mem.CurrentAlloc())

	var rec recorder
	mem.AssertSize(&rec, 0)
	assert.Len(t, rec.msgs, 1)
	assert.Contains(t, rec.msgs[0], "INVALID FREE")
}

func TestCheckedAllocatorLeak(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	b := mem.Allocate(10)

	var rec recorder
	mem.AssertSize(&rec, 0)
	assert.Len(t, rec.msgs, 2)
	assert.Contains(t, rec.msgs[0], "LEAK of 10 bytes")

	mem.Free(b)
	mem.AssertSize(t, 0)
}

func TestCheckedAllocatorReallocate(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := mem.Allocate(8)
	b[0] = 7
	b = mem.Reallocate(32, b)
	assert.Equal(t, byte(7), b[0])
	assert.Equal(t, 32, mem.CurrentAlloc())
	mem.Free(b)
}
