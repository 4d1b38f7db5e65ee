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

package main

import (
	"bytes"
	"testing"

	"github.com/casacore/casabind"
	"github.com/casacore/casabind/bind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing(t *testing.T) {
	reg, err := casabind.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	listSymbols(&buf, reg)
	assert.Contains(t, buf.String(), "MDirection!Convert")
	assert.Contains(t, buf.String(), casabind.ModuleName+":")

	buf.Reset()
	listFunctions(&buf, reg)
	assert.Contains(t, buf.String(), "deleteSubTable")

	buf.Reset()
	require.NoError(t, showSymbol(&buf, reg, "TableOption"))
	assert.Contains(t, buf.String(), "NewNoReplace")

	buf.Reset()
	require.NoError(t, showSymbol(&buf, reg, "Vector"))
	assert.Contains(t, buf.String(), "Vector{Float64}")

	assert.ErrorIs(t, showSymbol(&buf, reg, "NoSuchThing"), bind.ErrNotFound)
}
