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

//go:build assert

package debug_test

import (
	"errors"
	"testing"

	"github.com/casacore/casabind/internal/debug"
	"github.com/stretchr/testify/assert"
)

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { debug.Assert(true, "unused") })

	calls := 0
	msg := func() string { calls++; return "lazy" }
	debug.Assert(true, msg)
	assert.Zero(t, calls)

	defer func() {
		err, ok := recover().(error)
		if assert.True(t, ok) {
			assert.True(t, errors.Is(err, debug.ErrAssertion))
			assert.Contains(t, err.Error(), "lazy")
		}
		assert.Equal(t, 1, calls)
	}()
	debug.Assert(false, msg)
}
