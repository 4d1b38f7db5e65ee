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
	"runtime"
	"sort"
	"strings"
	"sync"
)

// CheckedAllocator wraps an Allocator and records every live allocation so
// tests can detect leaks, frees of memory it never handed out, and frees of
// memory that was already freed.
type CheckedAllocator struct {
	mem Allocator

	mu       sync.Mutex
	live     map[uintptr]site
	size     int
	badFrees []uintptr
}

// site is where a live allocation was made, outside this package.
type site struct {
	fn   string
	line int
	size int
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem, live: make(map[uintptr]site)}
}

func (a *CheckedAllocator) CurrentAlloc() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.size
}

// InvalidFrees returns the number of Free calls on storage that was not live.
func (a *CheckedAllocator) InvalidFrees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.badFrees)
}

func (a *CheckedAllocator) Allocate(size int) []byte {
	out := a.mem.Allocate(size)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.size += size
	if size > 0 {
		a.live[addressOf(out)] = callerSite(size)
	}
	return out
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	out := a.mem.Reallocate(size, b)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.size += size - len(b)
	if len(b) > 0 {
		delete(a.live, addressOf(b))
	}
	if size > 0 {
		a.live[addressOf(out)] = callerSite(size)
	}
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	if len(b) == 0 {
		a.mem.Free(b)
		return
	}

	ptr := addressOf(b)
	a.mu.Lock()
	if _, ok := a.live[ptr]; !ok {
		a.badFrees = append(a.badFrees, ptr)
		a.mu.Unlock()
		return
	}
	delete(a.live, ptr)
	a.size -= len(b)
	a.mu.Unlock()
	a.mem.Free(b)
}

const pkgPrefix = "github.com/casacore/casabind/memory."

// callerSite records the first frame outside this package, so allocations
// made through a Buffer or AllocateSlice point at the code that asked.
func callerSite(size int) site {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, pkgPrefix) {
			return site{fn: f.Function, line: f.Line, size: size}
		}
		if !more {
			return site{fn: "unknown", size: size}
		}
	}
}

type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize reports every live allocation as a leak, every invalid free, and
// fails if the outstanding size differs from sz.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()

	ptrs := make([]uintptr, 0, len(a.live))
	for p := range a.live {
		ptrs = append(ptrs, p)
	}
	sort.Slice(ptrs, func(i, j int) bool { return ptrs[i] < ptrs[j] })
	for _, p := range ptrs {
		s := a.live[p]
		t.Errorf("LEAK of %d bytes FROM %s line %d", s.size, s.fn, s.line)
	}
	for _, p := range a.badFrees {
		t.Errorf("INVALID FREE of %#x (never allocated or already freed)", p)
	}
	if a.size != sz {
		t.Errorf("invalid memory size exp=%d, got=%d", sz, a.size)
	}
}

var _ Allocator = (*CheckedAllocator)(nil)
